package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	timeradapter "pomo/internal/modules/timer/adapter/out"
)

func TestResolvePathSanitizesNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timeradapter.NewFileLogStore(dir)

	path, err := store.ResolvePath(context.Background(), "write docs!", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(path) != "write_docs_.json" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
}

func TestResolvePathFallsBackToTimestamp(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timeradapter.NewFileLogStore(dir)

	path, err := store.ResolvePath(context.Background(), "", 1060)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(path) != "19700101T001740Z.json" {
		t.Fatalf("unexpected fallback filename %s", filepath.Base(path))
	}
}

func TestResolvePathAppendsStampOnCollision(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timeradapter.NewFileLogStore(dir)
	ctx := context.Background()

	first, err := store.ResolvePath(ctx, "focus", 0)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if err := store.Initialize(ctx, first, 1, "focus", 0, 60); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	second, err := store.ResolvePath(ctx, "focus", 200)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second == first {
		t.Fatalf("collision not avoided: %s", second)
	}
	if !strings.HasSuffix(filepath.Base(second), "-19700101T000320Z.json") {
		t.Fatalf("expected stamp suffix, got %s", filepath.Base(second))
	}
}

func TestMarkCompletedIsIdempotentAndClearsCancel(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timeradapter.NewFileLogStore(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "s.json")

	if err := store.Initialize(ctx, path, 1, "", 0, 60); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	log, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("read fresh log: %v", err)
	}
	if log.Completed || log.Canceled {
		t.Fatalf("fresh log must have both terminal flags false: %+v", log)
	}

	if err := store.MarkCanceled(ctx, path, 30); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := store.MarkCompleted(ctx, path, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}
	log, _ = store.Read(ctx, path)
	if !log.Completed || log.Canceled || log.CanceledAt != "" {
		t.Fatalf("completion must clear cancellation: %+v", log)
	}

	before, _ := os.ReadFile(path)
	if err := store.MarkCompleted(ctx, path, 99); err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("repeat completion must not rewrite the file")
	}
}

func TestMarkCanceledIsIdempotentAndClearsCompletion(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timeradapter.NewFileLogStore(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "s.json")

	if err := store.Initialize(ctx, path, 1, "", 0, 60); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := store.MarkCompleted(ctx, path, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := store.MarkCanceled(ctx, path, 70); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	log, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !log.Canceled || log.Completed || log.CompletedAt != "" {
		t.Fatalf("cancellation must clear completion: %+v", log)
	}

	before, _ := os.ReadFile(path)
	if err := store.MarkCanceled(ctx, path, 99); err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("repeat cancellation must not rewrite the file")
	}
}
