package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	historyadapter "pomo/internal/modules/history/adapter/out"
	"pomo/internal/modules/history/service"
	"pomo/internal/modules/history/usecase"
	timeradapter "pomo/internal/modules/timer/adapter/out"
	timerservice "pomo/internal/modules/timer/service"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time        { return f.now }
func (f *fakeClock) Sleep(d time.Duration) { f.now = f.now.Add(d) }

func TestHistoryIndexesFinishedSessions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	timer := timerservice.NewTimerService(
		&fakeClock{now: time.Unix(0, 0)},
		timeradapter.NewFileStateStore(dir),
		timeradapter.NewFileLogStore(dir),
	)
	if _, err := timer.Start(ctx, time.Unix(0, 0), 1, "reading", false); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := timer.Status(ctx, time.Unix(70, 0)); err != nil {
		t.Fatalf("finalize first: %v", err)
	}
	second, err := timer.Start(ctx, time.Unix(100, 0), 5, "writing", false)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if _, err := timer.Start(ctx, time.Unix(110, 0), 2, "override", true); err != nil {
		t.Fatalf("forced start: %v", err)
	}
	_ = second

	projector, err := historyadapter.NewSQLiteIndexProjector(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open projector: %v", err)
	}
	uc := usecase.NewInteractor(service.NewHistoryService(
		historyadapter.NewFileLogScanner(dir),
		projector,
	))

	reindexed, err := uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if reindexed.Indexed != 3 {
		t.Fatalf("expected 3 indexed logs, got %d", reindexed.Indexed)
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 || stats.Canceled != 1 || stats.Open != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.FocusMinutes != 1 {
		t.Fatalf("expected 1 completed focus minute, got %d", stats.FocusMinutes)
	}

	records, err := uc.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	outcomes := map[string]int{}
	for _, record := range records {
		outcomes[record.Outcome]++
	}
	if outcomes["completed"] != 1 || outcomes["canceled"] != 1 || outcomes["open"] != 1 {
		t.Fatalf("unexpected outcomes: %v", outcomes)
	}
}

func TestHistoryOnEmptyDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	projector, err := historyadapter.NewSQLiteIndexProjector(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open projector: %v", err)
	}
	uc := usecase.NewInteractor(service.NewHistoryService(
		historyadapter.NewFileLogScanner(filepath.Join(dir, "missing")),
		projector,
	))
	records, err := uc.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
