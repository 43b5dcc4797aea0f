package usecase

import (
	"context"

	"pomo/internal/modules/history/domain"
	"pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	indexed, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Indexed: indexed}, nil
}

func (i *Interactor) List(ctx context.Context, limit int) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, recordOutput(record))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Total:        stats.Total,
		Completed:    stats.Completed,
		Canceled:     stats.Canceled,
		Open:         stats.Open,
		FocusMinutes: stats.FocusMinutes,
	}, nil
}

func recordOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		Path:        record.Path,
		Minutes:     record.Minutes,
		Note:        record.Note,
		StartedAt:   record.StartedAt,
		EndsAt:      record.EndsAt,
		Outcome:     record.Outcome(),
		CompletedAt: record.CompletedAt,
		CanceledAt:  record.CanceledAt,
	}
}
