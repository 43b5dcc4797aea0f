package dto

type RecordOutput struct {
	Path        string
	Minutes     uint64
	Note        string
	StartedAt   string
	EndsAt      string
	Outcome     string
	CompletedAt string
	CanceledAt  string
}

type StatsOutput struct {
	Total        int
	Completed    int
	Canceled     int
	Open         int
	FocusMinutes uint64
}

type ReindexOutput struct {
	Indexed int
}
