package timer

import (
	"fmt"
	"time"
)

// Phase is one state of the work/rest cycle.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseRestReady
	PhaseRest
	PhaseNextReady
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseWork:      "WORK",
	PhaseRestReady: "REST READY",
	PhaseRest:      "REST",
	PhaseNextReady: "NEXT READY",
	PhaseDone:      "DONE",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// Timed reports whether the phase counts down. The ready/done phases
// wait for an explicit caller action instead.
func (p Phase) Timed() bool {
	return p == PhaseWork || p == PhaseRest
}

// Session is the live countdown state for one task.
type Session struct {
	TaskID       int64
	TaskName     string
	Running      bool
	Phase        Phase
	CurrentCycle int
	TotalCycles  int
	StartTime    time.Time
	Duration     time.Duration
	Remaining    time.Duration
}

// Task carries the slice of task state the controller needs to start
// a session.
type Task struct {
	ID              int64
	Name            string
	DurationMinutes int
}

// CyclesFor maps a task duration in minutes to its number of
// work/rest cycles: every started 30-minute block is one cycle,
// minimum one.
func CyclesFor(durationMinutes int) int {
	if durationMinutes <= 30 {
		return 1
	}
	n := durationMinutes / 30
	if durationMinutes%30 != 0 {
		n++
	}
	return n
}

// FormatRemaining renders a countdown as zero-padded MM:SS, floored
// to the whole second and clamped at zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
