package in

import (
	"context"
	"time"

	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, now time.Time, minutes uint64, note string, force bool) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Now: now, Minutes: minutes, Note: note, Force: force})
}

func (h CLIHandler) Status(ctx context.Context, now time.Time) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx, dto.StatusInput{Now: now})
}

func (h CLIHandler) Stop(ctx context.Context) error {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Run(ctx context.Context, session dto.SessionOutput, cancelCheck func() bool, onTick func(remainingSecs uint64)) (dto.RunOutput, error) {
	return h.usecase.Run(ctx, dto.RunInput{Session: session, CancelCheck: cancelCheck, OnTick: onTick})
}
