package timer

import "time"

// Clock abstracts wall-clock time so tests can drive the countdown.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
