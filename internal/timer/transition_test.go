package timer

import "testing"

func runningSession(phase Phase, cycle, total int) Session {
	return Session{
		TaskID:       1,
		TaskName:     "Report",
		Running:      true,
		Phase:        phase,
		CurrentCycle: cycle,
		TotalCycles:  total,
	}
}

// ============================================================
// Work expiry
// ============================================================

func TestAdvanceWorkToRestReady(t *testing.T) {
	s, ev := advance(runningSession(PhaseWork, 1, 2))
	if s.Phase != PhaseRestReady {
		t.Fatalf("phase = %v, want RestReady", s.Phase)
	}
	if s.Running {
		t.Fatal("session should not be running after work expiry")
	}
	if s.Remaining != 0 {
		t.Fatalf("remaining = %v, want 0", s.Remaining)
	}
	if ev.Kind != EventWorkEnded {
		t.Fatalf("event = %v, want EventWorkEnded", ev.Kind)
	}
}

func TestAdvanceFinalWorkCompletesTask(t *testing.T) {
	s, ev := advance(runningSession(PhaseWork, 2, 2))
	if s.Phase != PhaseDone {
		t.Fatalf("phase = %v, want Done", s.Phase)
	}
	if ev.Kind != EventTaskCompleted {
		t.Fatalf("event = %v, want EventTaskCompleted", ev.Kind)
	}
}

func TestAdvanceFirstCycleWorkNeverCompletes(t *testing.T) {
	// A single-cycle task's first work still goes through the rest
	// phase; completion fires only on advanced cycles.
	s, ev := advance(runningSession(PhaseWork, 1, 1))
	if s.Phase != PhaseRestReady {
		t.Fatalf("phase = %v, want RestReady", s.Phase)
	}
	if ev.Kind != EventWorkEnded {
		t.Fatalf("event = %v, want EventWorkEnded", ev.Kind)
	}
}

// ============================================================
// Rest expiry
// ============================================================

func TestAdvanceRestToNextReady(t *testing.T) {
	s, ev := advance(runningSession(PhaseRest, 1, 2))
	if s.Phase != PhaseNextReady {
		t.Fatalf("phase = %v, want NextReady", s.Phase)
	}
	if s.CurrentCycle != 2 {
		t.Fatalf("cycle = %d, want 2", s.CurrentCycle)
	}
	if ev.Kind != EventRestEnded {
		t.Fatalf("event = %v, want EventRestEnded", ev.Kind)
	}
	if ev.Cycle != 2 {
		t.Fatalf("event cycle = %d, want 2", ev.Cycle)
	}
}

func TestAdvanceFinalRestEndsDone(t *testing.T) {
	s, ev := advance(runningSession(PhaseRest, 2, 2))
	if s.Phase != PhaseDone {
		t.Fatalf("phase = %v, want Done", s.Phase)
	}
	if s.CurrentCycle != 2 {
		t.Fatalf("cycle = %d, should not increment past total", s.CurrentCycle)
	}
	if ev.Kind != EventRestEnded {
		t.Fatalf("event = %v, want EventRestEnded", ev.Kind)
	}
}

func TestAdvanceIsPure(t *testing.T) {
	in := runningSession(PhaseWork, 1, 2)
	advance(in)
	if !in.Running || in.Phase != PhaseWork {
		t.Fatal("advance must not mutate its input")
	}
}
