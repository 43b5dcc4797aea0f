package service

import (
	"context"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
)

// HistoryService keeps the sqlite index in step with the log files. The
// index is a disposable cache: the log files stay the source of truth, and
// every query path rebuilds before reading so a finished session shows up
// without an explicit reindex.
type HistoryService struct {
	scanner   historyout.LogScanner
	projector historyout.IndexProjector
}

func NewHistoryService(scanner historyout.LogScanner, projector historyout.IndexProjector) *HistoryService {
	return &HistoryService{scanner: scanner, projector: projector}
}

func (s *HistoryService) Reindex(ctx context.Context) (int, error) {
	records, err := s.scanner.Scan(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, record := range records {
		if err := s.projector.Upsert(ctx, record); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return s.projector.List(ctx, limit)
}

func (s *HistoryService) Stats(ctx context.Context) (domain.Stats, error) {
	if _, err := s.Reindex(ctx); err != nil {
		return domain.Stats{}, err
	}
	return s.projector.Stats(ctx)
}
