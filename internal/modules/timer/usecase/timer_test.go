package usecase_test

import (
	"context"
	"testing"
	"time"

	timeradapter "pomo/internal/modules/timer/adapter/out"
	"pomo/internal/modules/timer/dto"
	"pomo/internal/modules/timer/service"
	"pomo/internal/modules/timer/usecase"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time        { return f.now }
func (f *fakeClock) Sleep(d time.Duration) { f.now = f.now.Add(d) }

func TestStartRunStatusThroughUsecase(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clk := &fakeClock{now: time.Unix(0, 0)}
	uc := usecase.NewInteractor(service.NewTimerService(
		clk,
		timeradapter.NewFileStateStore(dir),
		timeradapter.NewFileLogStore(dir),
	))
	ctx := context.Background()

	session, err := uc.Start(ctx, dto.StartInput{Now: time.Unix(0, 0), Minutes: 1, Note: "review"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.EndUnix != 60 || session.LogPath == "" {
		t.Fatalf("unexpected session output: %+v", session)
	}

	status, err := uc.Status(ctx, dto.StatusInput{Now: time.Unix(30, 0)})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Kind != "running" || status.RemainingSecs != 30 {
		t.Fatalf("expected running with 30s left, got %+v", status)
	}

	run, err := uc.Run(ctx, dto.RunInput{Session: session, CancelCheck: func() bool { return false }})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Outcome != "completed" || run.LogPath != session.LogPath {
		t.Fatalf("unexpected run output: %+v", run)
	}

	status, err = uc.Status(ctx, dto.StatusInput{Now: clk.now})
	if err != nil {
		t.Fatalf("status after run: %v", err)
	}
	if status.Kind != "none" {
		t.Fatalf("state must be cleared after the loop, got %+v", status)
	}
}
