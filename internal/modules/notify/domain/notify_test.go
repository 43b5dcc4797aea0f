package domain_test

import (
	"strings"
	"testing"

	"pomo/internal/modules/notify/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	sha := strings.Repeat("a", 64)
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: sha, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityNotify}}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/n", SHA256: sha, Capabilities: []domain.Capability{domain.CapabilityNotify}}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "n", Binary: "/tmp/n", SHA256: sha, Capabilities: []domain.Capability{domain.CapabilityNotify}}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "n", Version: "1", SHA256: sha, Capabilities: []domain.Capability{domain.CapabilityNotify}}, shouldErr: true},
		{name: "bad sha", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: "XYZ", Capabilities: []domain.Capability{domain.CapabilityNotify}}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: sha}, shouldErr: true},
		{name: "unknown capability", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: sha, Capabilities: []domain.Capability{"analyze"}}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: sha, Capabilities: []domain.Capability{domain.CapabilityNotify, domain.CapabilityNotify}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	good := domain.Event{Kind: domain.EventSessionCompleted, Minutes: 25, LogPath: "/tmp/x.json"}
	if err := good.Validate(); err != nil {
		t.Fatalf("validate event: %v", err)
	}
	if err := (domain.Event{Kind: "exploded", LogPath: "/tmp/x.json"}).Validate(); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if err := (domain.Event{Kind: domain.EventSessionCanceled}).Validate(); err == nil {
		t.Fatalf("expected missing log path error")
	}
}
