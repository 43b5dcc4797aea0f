package clock

import "time"

// Clock abstracts time so the session state machine and loop are
// deterministic in tests. Sleep exists because the foreground loop paces
// itself in one-second ticks.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
