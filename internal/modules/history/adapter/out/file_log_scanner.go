package out

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
	apperrors "pomo/internal/platform/errors"
)

// FileLogScanner walks the data directory for session log files. state.json
// is the active-session record, not a log, and is skipped.
type FileLogScanner struct {
	dataDir string
}

func NewFileLogScanner(dataDir string) historyout.LogScanner {
	return &FileLogScanner{dataDir: dataDir}
}

func (s *FileLogScanner) Scan(_ context.Context) ([]domain.Record, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.IO("scan data dir", err)
	}
	records := make([]domain.Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == "state.json" || filepath.Ext(name) != ".json" {
			continue
		}
		path := filepath.Join(s.dataDir, name)
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.IO("read session log", err)
		}
		record := domain.Record{}
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, apperrors.Serialization("decode session log", err)
		}
		record.Path = path
		records = append(records, record)
	}
	return records, nil
}
