package tui

import (
	"fmt"
	"time"

	"tomato/internal/store"
	"tomato/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewFocus
	viewStats
	viewSettings
)

var viewNames = []string{"Tasks", "Focus", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// focusRequestMsg asks the app to open the focus view for a task and
// start its first work phase.
type focusRequestMsg struct {
	task store.Task
}

// PhaseEventMsg is sent into the program by the timer controller when
// a phase expires.
type PhaseEventMsg struct {
	Event timer.Event
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatSeconds(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
