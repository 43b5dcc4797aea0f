package dto

import "time"

type StartInput struct {
	Now     time.Time
	Minutes uint64
	Note    string
	Force   bool
}

type SessionOutput struct {
	StartUnix int64
	EndUnix   int64
	Minutes   uint64
	Note      string
	LogPath   string
}

type StatusInput struct {
	Now time.Time
}

type StatusOutput struct {
	Kind          string
	ElapsedSecs   uint64
	RemainingSecs uint64
	OverSecs      uint64
	JustLogged    bool
}

type RunInput struct {
	Session SessionOutput
	// CancelCheck is a side-effect-free predicate polled once per tick.
	CancelCheck func() bool
	// OnTick receives the remaining seconds before each sleep; nil is fine.
	OnTick func(remainingSecs uint64)
}

type RunOutput struct {
	Outcome string
	LogPath string
}
