package timer

// EventKind classifies a phase expiry.
type EventKind int

const (
	// EventWorkEnded: a work phase ran out, rest is ready.
	EventWorkEnded EventKind = iota
	// EventRestEnded: a rest phase ran out. The resulting phase is
	// NextReady, or Done when no cycles remain.
	EventRestEnded
	// EventTaskCompleted: the final work phase ran out.
	EventTaskCompleted
)

// Event describes an expired phase for the side-effect dispatcher.
type Event struct {
	Kind     EventKind
	TaskID   int64
	TaskName string
	Cycle    int
	Total    int
}

// advance computes the session state after its current phase expires.
// It is pure; side effects are dispatched from the returned event.
//
// Task completion fires only on work phases entered through
// AdvanceToNextCycle (cycle >= 2): a first-cycle work always yields
// RestReady, and a final rest ends the session without touching the
// task.
func advance(s Session) (Session, Event) {
	ev := Event{
		TaskID:   s.TaskID,
		TaskName: s.TaskName,
		Cycle:    s.CurrentCycle,
		Total:    s.TotalCycles,
	}
	s.Running = false
	s.Remaining = 0

	switch s.Phase {
	case PhaseWork:
		if s.CurrentCycle > 1 && s.CurrentCycle >= s.TotalCycles {
			s.Phase = PhaseDone
			ev.Kind = EventTaskCompleted
		} else {
			s.Phase = PhaseRestReady
			ev.Kind = EventWorkEnded
		}
	case PhaseRest:
		ev.Kind = EventRestEnded
		if s.CurrentCycle+1 > s.TotalCycles {
			s.Phase = PhaseDone
		} else {
			s.CurrentCycle++
			s.Phase = PhaseNextReady
			ev.Cycle = s.CurrentCycle
		}
	}
	return s, ev
}
