package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/fsname"
)

// FileLogStore owns per-session log files inside the data directory, one
// JSON record per started session.
type FileLogStore struct {
	dataDir string
}

func NewFileLogStore(dataDir string) timerout.LogStore {
	return &FileLogStore{dataDir: dataDir}
}

// ResolvePath derives a stable filename from the note, or from a compact UTC
// stamp of the start when no usable note is given. If the candidate already
// exists on disk the stamp is appended so repeat notes get distinct files.
// Resolution happens once, at session start.
func (s *FileLogStore) ResolvePath(_ context.Context, note string, startUnix int64) (string, error) {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", apperrors.IO("create data dir", err)
	}
	stamp := fsname.CompactStamp(startUnix)
	base := fsname.Sanitize(note)
	if base == "" {
		base = stamp
	}
	candidate := filepath.Join(s.dataDir, base+".json")
	if _, err := os.Stat(candidate); err == nil {
		candidate = filepath.Join(s.dataDir, fmt.Sprintf("%s-%s.json", base, stamp))
	}
	return candidate, nil
}

func (s *FileLogStore) Initialize(_ context.Context, path string, minutes uint64, note string, startUnix, endUnix int64) error {
	log := domain.SessionLog{
		Minutes:   minutes,
		Note:      note,
		StartedAt: formatTimestamp(startUnix),
		EndsAt:    formatTimestamp(endUnix),
	}
	return writeLog(path, log)
}

// MarkCompleted is idempotent: an already-completed record is left
// untouched. Setting completion clears any cancellation so the record
// reflects the final outcome (last writer wins).
func (s *FileLogStore) MarkCompleted(ctx context.Context, path string, atUnix int64) error {
	log, err := s.Read(ctx, path)
	if err != nil {
		return err
	}
	if log.Completed {
		return nil
	}
	log.Completed = true
	log.CompletedAt = formatTimestamp(atUnix)
	log.Canceled = false
	log.CanceledAt = ""
	return writeLog(path, log)
}

// MarkCanceled mirrors MarkCompleted with the flags swapped.
func (s *FileLogStore) MarkCanceled(ctx context.Context, path string, atUnix int64) error {
	log, err := s.Read(ctx, path)
	if err != nil {
		return err
	}
	if log.Canceled {
		return nil
	}
	log.Canceled = true
	log.CanceledAt = formatTimestamp(atUnix)
	log.Completed = false
	log.CompletedAt = ""
	return writeLog(path, log)
}

func (s *FileLogStore) Read(_ context.Context, path string) (domain.SessionLog, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.SessionLog{}, apperrors.IO("read session log", err)
	}
	log := domain.SessionLog{}
	if err := json.Unmarshal(payload, &log); err != nil {
		return domain.SessionLog{}, apperrors.Serialization("decode session log", err)
	}
	return log, nil
}

func writeLog(path string, log domain.SessionLog) error {
	payload, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return apperrors.Serialization("encode session log", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return apperrors.IO("write session log", err)
	}
	return nil
}

// formatTimestamp renders an instant in local time for the human-readable
// log fields.
func formatTimestamp(unix int64) string {
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04:05 MST")
}
