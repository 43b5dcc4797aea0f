package in

import (
	"context"

	"pomo/internal/modules/history/dto"
)

type Usecase interface {
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	List(ctx context.Context, limit int) ([]dto.RecordOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
