package usecase

import (
	"context"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/modules/timer/service"
)

type Interactor struct {
	svc *service.TimerService
}

func NewInteractor(svc *service.TimerService) timerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	session, err := i.svc.Start(ctx, input.Now, input.Minutes, input.Note, input.Force)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return sessionOutput(session), nil
}

func (i *Interactor) Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error) {
	status, err := i.svc.Status(ctx, input.Now)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return dto.StatusOutput{
		Kind:          string(status.Kind),
		ElapsedSecs:   status.ElapsedSecs,
		RemainingSecs: status.RemainingSecs,
		OverSecs:      status.OverSecs,
		JustLogged:    status.JustLogged,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context) error {
	return i.svc.Stop(ctx)
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	session := domain.ActiveSession{
		StartUnix: input.Session.StartUnix,
		EndUnix:   input.Session.EndUnix,
		Minutes:   input.Session.Minutes,
		Note:      input.Session.Note,
		LogPath:   input.Session.LogPath,
	}
	outcome, err := i.svc.RunLoop(ctx, session, input.CancelCheck, input.OnTick)
	if err != nil {
		return dto.RunOutput{}, err
	}
	return dto.RunOutput{Outcome: string(outcome), LogPath: session.LogPath}, nil
}

func sessionOutput(session domain.ActiveSession) dto.SessionOutput {
	return dto.SessionOutput{
		StartUnix: session.StartUnix,
		EndUnix:   session.EndUnix,
		Minutes:   session.Minutes,
		Note:      session.Note,
		LogPath:   session.LogPath,
	}
}
