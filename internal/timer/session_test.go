package timer

import (
	"testing"
	"time"
)

// ============================================================
// Cycle math
// ============================================================

func TestCyclesFor(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{0, 1},
		{1, 1},
		{25, 1},
		{30, 1},
		{31, 2},
		{45, 2},
		{60, 2},
		{61, 3},
		{90, 3},
		{120, 4},
	}
	for _, c := range cases {
		if got := CyclesFor(c.minutes); got != c.want {
			t.Errorf("CyclesFor(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{65 * time.Second, "01:05"},
		{-5 * time.Second, "00:00"},
		{25 * time.Minute, "25:00"},
		{1500 * time.Millisecond, "00:01"}, // floored to the second
		{99 * time.Minute, "99:00"},
	}
	for _, c := range cases {
		if got := FormatRemaining(c.d); got != c.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

// ============================================================
// Phase
// ============================================================

func TestPhaseString(t *testing.T) {
	if PhaseWork.String() != "WORK" {
		t.Errorf("got %q", PhaseWork.String())
	}
	if PhaseDone.String() != "DONE" {
		t.Errorf("got %q", PhaseDone.String())
	}
	if Phase(99).String() != "UNKNOWN" {
		t.Errorf("got %q", Phase(99).String())
	}
}

func TestPhaseTimed(t *testing.T) {
	timed := map[Phase]bool{
		PhaseWork:      true,
		PhaseRest:      true,
		PhaseRestReady: false,
		PhaseNextReady: false,
		PhaseDone:      false,
	}
	for p, want := range timed {
		if p.Timed() != want {
			t.Errorf("%v.Timed() = %v, want %v", p, p.Timed(), want)
		}
	}
}
