package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, name string) (dto.TestOutput, error) {
	return h.usecase.Test(ctx, name)
}

func (h CLIHandler) Broadcast(ctx context.Context, event dto.EventInput) ([]dto.DeliveryOutput, error) {
	return h.usecase.Broadcast(ctx, event)
}
