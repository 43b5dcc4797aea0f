package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/dto"
	notifyout "pomo/internal/modules/notify/port/out"
)

type NotifyService struct {
	store notifyout.ManifestStore
	host  notifyout.Host
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host) *NotifyService {
	return &NotifyService{store: store, host: host}
}

func (s *NotifyService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Broadcast delivers one terminal-state event to every enabled notifier.
// Delivery is best-effort per plugin: one failing notifier does not stop the
// others, and failures come back as per-plugin results rather than aborting.
func (s *NotifyService) Broadcast(ctx context.Context, event domain.Event) ([]domain.Delivery, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	deliveries := make([]domain.Delivery, 0, len(manifests))
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.HasCapability(domain.CapabilityNotify) {
			continue
		}
		delivery := domain.Delivery{Plugin: manifest.Name}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			delivery.Err = err
		} else if err := s.host.Notify(ctx, manifest, event); err != nil {
			delivery.Err = err
		} else {
			delivery.Delivered = true
		}
		deliveries = append(deliveries, delivery)
	}
	return deliveries, nil
}

// Test exercises one notifier end to end: metadata over the wire, then a
// synthetic completed-session event. It is the hands-on counterpart to
// Doctor, which never pushes an event through the plugin.
func (s *NotifyService) Test(ctx context.Context, name string) (dto.TestOutput, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.TestOutput{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name != name {
			continue
		}
		if !manifest.Enabled {
			return dto.TestOutput{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, name)
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return dto.TestOutput{}, err
		}
		meta, err := s.host.GetMetadata(ctx, manifest)
		if err != nil {
			return dto.TestOutput{}, fmt.Errorf("get metadata: %w", err)
		}
		// The manifest promises the notify capability; make sure the
		// running binary agrees before pushing an event at it.
		reported := false
		for _, c := range meta.Capabilities {
			if c == domain.CapabilityNotify {
				reported = true
				break
			}
		}
		if !reported {
			return dto.TestOutput{}, fmt.Errorf("notifier %s does not report the notify capability", name)
		}
		event := domain.Event{
			Kind:    domain.EventSessionCompleted,
			Minutes: 25,
			Note:    "test delivery",
			LogPath: "(test)",
		}
		if err := s.host.Notify(ctx, manifest, event); err != nil {
			return dto.TestOutput{}, err
		}
		caps := make([]string, 0, len(meta.Capabilities))
		for _, c := range meta.Capabilities {
			caps = append(caps, string(c))
		}
		return dto.TestOutput{
			Name:         meta.Name,
			Version:      meta.Version,
			Capabilities: caps,
			Delivered:    true,
		}, nil
	}
	return dto.TestOutput{}, fmt.Errorf("unknown notifier: %s", name)
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate notifier name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read notifier binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
