package domain

// Record is the read-side view of one finished (or abandoned) session log.
// JSON tags mirror the log files written by the timer module; this module
// never writes them.
type Record struct {
	Path        string `json:"-"`
	Minutes     uint64 `json:"minutes"`
	Note        string `json:"note"`
	StartedAt   string `json:"started_at"`
	EndsAt      string `json:"ends_at"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at"`
	Canceled    bool   `json:"canceled"`
	CanceledAt  string `json:"canceled_at"`
}

func (r Record) Outcome() string {
	switch {
	case r.Completed:
		return "completed"
	case r.Canceled:
		return "canceled"
	default:
		return "open"
	}
}

type Stats struct {
	Total        int
	Completed    int
	Canceled     int
	Open         int
	FocusMinutes uint64
}
