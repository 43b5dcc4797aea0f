package out

import (
	"context"

	"pomo/internal/modules/timer/domain"
)

// StateStore owns the single active-session file. Writes are whole-file
// overwrites assumed exclusive to one process; there is no cross-process
// locking (documented limitation, not handled here).
type StateStore interface {
	// Load returns apperrors.ErrNoActiveSession when no state file exists.
	Load(ctx context.Context) (domain.ActiveSession, error)
	Save(ctx context.Context, session domain.ActiveSession) error
	// Remove is a no-op when no state file exists.
	Remove(ctx context.Context) error
}

// LogStore owns per-session log file content. Marking either terminal state
// is idempotent and clears the opposite one; there is no transactional
// coupling with the StateStore, recovery is via idempotent re-finalization.
type LogStore interface {
	ResolvePath(ctx context.Context, note string, startUnix int64) (string, error)
	Initialize(ctx context.Context, path string, minutes uint64, note string, startUnix, endUnix int64) error
	MarkCompleted(ctx context.Context, path string, atUnix int64) error
	MarkCanceled(ctx context.Context, path string, atUnix int64) error
	Read(ctx context.Context, path string) (domain.SessionLog, error)
}
