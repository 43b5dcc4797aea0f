package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error)
	Stop(ctx context.Context) error
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
}
