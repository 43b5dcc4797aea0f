package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Test(ctx context.Context, name string) (dto.TestOutput, error)
	Broadcast(ctx context.Context, event dto.EventInput) ([]dto.DeliveryOutput, error)
}
