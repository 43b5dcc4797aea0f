package out

import (
	"context"

	"pomo/internal/modules/history/domain"
)

// LogScanner reads session log files from the data directory.
type LogScanner interface {
	Scan(ctx context.Context) ([]domain.Record, error)
}

// IndexProjector maintains the disposable query index over scanned logs.
type IndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, record domain.Record) error
	List(ctx context.Context, limit int) ([]domain.Record, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
