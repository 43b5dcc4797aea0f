package domain

import "encoding/json"

// ActiveSession is the single in-progress countdown persisted in state.json.
// At most one exists at a time.
type ActiveSession struct {
	StartUnix int64  `json:"start_unix"`
	EndUnix   int64  `json:"end_unix"`
	Minutes   uint64 `json:"minutes"`
	Note      string `json:"note"`
	// LogPath identifies the session's log record; stable for the
	// session's whole life.
	LogPath string `json:"log_file"`
	// CompletedLogged flips to true only after the log has been durably
	// marked completed. It is the guard against double-logging.
	CompletedLogged bool `json:"completed_logged"`
}

// UnmarshalJSON accepts the legacy "logged" field name for CompletedLogged,
// kept for state files written by earlier releases.
func (s *ActiveSession) UnmarshalJSON(data []byte) error {
	type plain ActiveSession
	aux := struct {
		*plain
		Logged *bool `json:"logged"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Logged != nil && !s.CompletedLogged {
		s.CompletedLogged = *aux.Logged
	}
	return nil
}

func (s ActiveSession) IsCompleteAt(nowUnix int64) bool {
	return nowUnix >= s.EndUnix
}

// RemainingAt returns seconds until the natural end, floored at zero.
func (s ActiveSession) RemainingAt(nowUnix int64) uint64 {
	if s.EndUnix <= nowUnix {
		return 0
	}
	return uint64(s.EndUnix - nowUnix)
}

// ElapsedAt returns seconds since start, floored at zero.
func (s ActiveSession) ElapsedAt(nowUnix int64) uint64 {
	if nowUnix <= s.StartUnix {
		return 0
	}
	return uint64(nowUnix - s.StartUnix)
}

// SessionLog is the durable per-session record. Descriptive fields are set
// at creation and never mutated; the terminal flags are mutually exclusive
// with last-writer-wins semantics.
type SessionLog struct {
	Minutes     uint64 `json:"minutes"`
	Note        string `json:"note"`
	StartedAt   string `json:"started_at"`
	EndsAt      string `json:"ends_at"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	Canceled    bool   `json:"canceled"`
	CanceledAt  string `json:"canceled_at,omitempty"`
}

type StatusKind string

const (
	StatusNone      StatusKind = "none"
	StatusRunning   StatusKind = "running"
	StatusCompleted StatusKind = "completed"
)

type Status struct {
	Kind          StatusKind
	ElapsedSecs   uint64
	RemainingSecs uint64
	OverSecs      uint64
	// JustLogged is true only on the call that performed finalization.
	JustLogged bool
}

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCanceled  Outcome = "canceled"
)
