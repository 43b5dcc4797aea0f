package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/service"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s *fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	notified []string
	events   []domain.Event
	failFor  string
	// metaCaps overrides the capabilities reported over the wire when set.
	metaCaps []domain.Capability
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error {
	return nil
}

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	caps := m.Capabilities
	if h.metaCaps != nil {
		caps = h.metaCaps
	}
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: caps}, nil
}

func (h *fakeHost) Notify(_ context.Context, m domain.Manifest, event domain.Event) error {
	if m.Name == h.failFor {
		return errors.New("plugin crashed")
	}
	h.notified = append(h.notified, m.Name)
	h.events = append(h.events, event)
	return nil
}

func writeBinary(t *testing.T, dir string, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func manifestFor(name string, binary string, sha string, enabled bool) domain.Manifest {
	return domain.Manifest{
		Name:         name,
		Version:      "1.0.0",
		Binary:       binary,
		SHA256:       sha,
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilityNotify},
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, _ := writeBinary(t, dir, "desktop-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("desktop", binary, "0000000000000000000000000000000000000000000000000000000000000000", true),
	}}
	svc := service.NewNotifyService(store, nil)

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].BinaryReachable {
		t.Fatalf("expected binary to be reachable")
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if results[0].Error != "checksum mismatch" {
		t.Fatalf("unexpected error message: %q", results[0].Error)
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	t.Parallel()
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("ghost", "/nonexistent/ghost-notifier", "0000000000000000000000000000000000000000000000000000000000000000", true),
	}}
	svc := service.NewNotifyService(store, nil)

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if results[0].BinaryReachable {
		t.Fatalf("expected binary to be unreachable")
	}
	if results[0].Error == "" {
		t.Fatalf("expected missing binary error")
	}
}

func TestBroadcastSkipsDisabledPlugins(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	onBinary, onSHA := writeBinary(t, dir, "on-notifier")
	offBinary, offSHA := writeBinary(t, dir, "off-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("on", onBinary, onSHA, true),
		manifestFor("off", offBinary, offSHA, false),
	}}
	host := &fakeHost{}
	svc := service.NewNotifyService(store, host)

	event := domain.Event{Kind: domain.EventSessionCompleted, Minutes: 25, LogPath: "/tmp/x.json"}
	deliveries, err := svc.Broadcast(context.Background(), event)
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(deliveries))
	}
	if deliveries[0].Plugin != "on" || !deliveries[0].Delivered {
		t.Fatalf("unexpected delivery: %+v", deliveries[0])
	}
	if len(host.notified) != 1 || host.notified[0] != "on" {
		t.Fatalf("unexpected host calls: %v", host.notified)
	}
}

func TestBroadcastIsBestEffortPerPlugin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	aBinary, aSHA := writeBinary(t, dir, "a-notifier")
	bBinary, bSHA := writeBinary(t, dir, "b-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("alpha", aBinary, aSHA, true),
		manifestFor("beta", bBinary, bSHA, true),
	}}
	host := &fakeHost{failFor: "alpha"}
	svc := service.NewNotifyService(store, host)

	event := domain.Event{Kind: domain.EventSessionCanceled, Minutes: 10, LogPath: "/tmp/x.json"}
	deliveries, err := svc.Broadcast(context.Background(), event)
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(deliveries))
	}
	if deliveries[0].Plugin != "alpha" || deliveries[0].Delivered || deliveries[0].Err == nil {
		t.Fatalf("expected alpha to fail, got %+v", deliveries[0])
	}
	if deliveries[1].Plugin != "beta" || !deliveries[1].Delivered {
		t.Fatalf("expected beta to be delivered, got %+v", deliveries[1])
	}
}

func TestTestDeliversSampleEvent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sha := writeBinary(t, dir, "desktop-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("desktop", binary, sha, true),
	}}
	host := &fakeHost{}
	svc := service.NewNotifyService(store, host)

	result, err := svc.Test(context.Background(), "desktop")
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if !result.Delivered {
		t.Fatalf("expected delivery, got %+v", result)
	}
	if result.Name != "desktop" || result.Version != "1.0.0" {
		t.Fatalf("unexpected metadata: %+v", result)
	}
	if len(result.Capabilities) != 1 || result.Capabilities[0] != "notify" {
		t.Fatalf("unexpected capabilities: %v", result.Capabilities)
	}
	if len(host.events) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(host.events))
	}
	if err := host.events[0].Validate(); err != nil {
		t.Fatalf("sample event must be valid: %v", err)
	}
	if host.events[0].Kind != domain.EventSessionCompleted {
		t.Fatalf("unexpected event kind: %s", host.events[0].Kind)
	}
}

func TestTestRejectsDisabledPlugin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sha := writeBinary(t, dir, "desktop-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("desktop", binary, sha, false),
	}}
	host := &fakeHost{}
	svc := service.NewNotifyService(store, host)

	_, err := svc.Test(context.Background(), "desktop")
	if !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if len(host.notified) != 0 {
		t.Fatalf("disabled plugin must not be called: %v", host.notified)
	}
}

func TestTestRejectsCapabilityMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sha := writeBinary(t, dir, "desktop-notifier")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		manifestFor("desktop", binary, sha, true),
	}}
	host := &fakeHost{metaCaps: []domain.Capability{}}
	svc := service.NewNotifyService(store, host)

	_, err := svc.Test(context.Background(), "desktop")
	if err == nil {
		t.Fatalf("expected capability mismatch error")
	}
	if len(host.events) != 0 {
		t.Fatalf("no event must be delivered on mismatch, got %d", len(host.events))
	}
}

func TestTestUnknownPluginFails(t *testing.T) {
	t.Parallel()
	svc := service.NewNotifyService(&fakeManifestStore{}, &fakeHost{})
	if _, err := svc.Test(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected unknown notifier error")
	}
}

func TestBroadcastRejectsInvalidEvent(t *testing.T) {
	t.Parallel()
	svc := service.NewNotifyService(&fakeManifestStore{}, &fakeHost{})
	if _, err := svc.Broadcast(context.Background(), domain.Event{Kind: "bogus"}); err == nil {
		t.Fatalf("expected invalid event error")
	}
}
