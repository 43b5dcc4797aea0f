package out

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	apperrors "pomo/internal/platform/errors"
)

// FileStateStore keeps the single active-session record in
// <dataDir>/state.json. Saves overwrite the whole file.
type FileStateStore struct {
	dataDir string
	path    string
}

func NewFileStateStore(dataDir string) timerout.StateStore {
	return &FileStateStore{dataDir: dataDir, path: filepath.Join(dataDir, "state.json")}
}

func (s *FileStateStore) Load(_ context.Context) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, apperrors.IO("read state", err)
	}
	session := domain.ActiveSession{}
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.ActiveSession{}, apperrors.Serialization("decode state", err)
	}
	return session, nil
}

func (s *FileStateStore) Save(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return apperrors.IO("create data dir", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return apperrors.Serialization("encode state", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return apperrors.IO("write state", err)
	}
	return nil
}

func (s *FileStateStore) Remove(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.IO("remove state", err)
	}
	return nil
}
