package usecase

import (
	"context"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	"pomo/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Test(ctx context.Context, name string) (dto.TestOutput, error) {
	return i.svc.Test(ctx, name)
}

func (i *Interactor) Broadcast(ctx context.Context, event dto.EventInput) ([]dto.DeliveryOutput, error) {
	deliveries, err := i.svc.Broadcast(ctx, domain.Event{
		Kind:       domain.EventKind(event.Kind),
		Minutes:    event.Minutes,
		Note:       event.Note,
		LogPath:    event.LogPath,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryOutput, 0, len(deliveries))
	for _, delivery := range deliveries {
		result := dto.DeliveryOutput{Plugin: delivery.Plugin, Delivered: delivery.Delivered}
		if delivery.Err != nil {
			result.Error = delivery.Err.Error()
		}
		out = append(out, result)
	}
	return out, nil
}
