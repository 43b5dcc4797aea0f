package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilityNotify Capability = "notify"
)

var (
	ErrPluginDisabled   = errors.New("notifier plugin is disabled")
	ErrChecksumMismatch = errors.New("notifier plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("notifier plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one notifier plugin binary. Binaries are pinned by
// sha256 so a swapped executable is refused, not silently run.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("notifier capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityNotify:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

type EventKind string

const (
	EventSessionCompleted EventKind = "session_completed"
	EventSessionCanceled  EventKind = "session_canceled"
)

func (k EventKind) Validate() error {
	switch k {
	case EventSessionCompleted, EventSessionCanceled:
		return nil
	default:
		return fmt.Errorf("unknown event kind: %s", k)
	}
}

// Event is the payload delivered to notifier plugins when a session reaches
// a terminal state.
type Event struct {
	Kind       EventKind
	Minutes    uint64
	Note       string
	LogPath    string
	OccurredAt string
}

func (e Event) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if e.LogPath == "" {
		return fmt.Errorf("event log path is required")
	}
	return nil
}

// Delivery reports one plugin's handling of a broadcast event.
type Delivery struct {
	Plugin    string
	Delivered bool
	Err       error
}
