package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tomato/internal/store"
	"tomato/internal/timer"
)

// focusModel drives the countdown view for one selected task. The
// session state itself lives in the timer controller; this model
// renders snapshots and records session history around it.
type focusModel struct {
	store  *store.Store
	ctrl   *timer.Controller
	width  int
	height int

	task    store.Task
	hasTask bool

	// history row ids per task, for the focus_sessions log
	sessionIDs map[int64]int64
}

func newFocusModel(s *store.Store, ctrl *timer.Controller) focusModel {
	return focusModel{
		store:      s,
		ctrl:       ctrl,
		sessionIDs: make(map[int64]int64),
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

// begin selects a task and starts its first work phase.
func (f *focusModel) begin(task store.Task) tea.Cmd {
	f.task = task
	f.hasTask = true

	// A leftover history row from an earlier run of this task gets
	// closed out as cancelled before the new one starts.
	f.cancelHistory(task.ID)

	f.ctrl.StartWork(timer.Task{
		ID:              task.ID,
		Name:            task.Name,
		DurationMinutes: task.DurationMinutes,
	})

	cfg := f.ctrl.Config()
	sess, err := f.store.StartSession(task.ID,
		int(cfg.Work.Seconds()),
		int(cfg.Rest.Seconds()),
		timer.CyclesFor(task.DurationMinutes),
	)
	if err == nil {
		f.sessionIDs[task.ID] = sess.ID
	}

	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Focus started: %s", task.Name)}
	}
}

func (f *focusModel) cancelHistory(taskID int64) {
	if sid, ok := f.sessionIDs[taskID]; ok {
		f.store.CancelSession(sid)
		delete(f.sessionIDs, taskID)
	}
}

// handleEvent records phase expiries in the session history. Called
// for events from any task, not just the displayed one.
func (f *focusModel) handleEvent(ev timer.Event) tea.Cmd {
	sid, hasRow := f.sessionIDs[ev.TaskID]
	s, alive := f.ctrl.Get(ev.TaskID)

	switch ev.Kind {
	case timer.EventRestEnded:
		if hasRow {
			if alive && s.Phase == timer.PhaseDone {
				// Final rest: the session is over.
				f.store.CompleteSession(sid)
				delete(f.sessionIDs, ev.TaskID)
			} else {
				f.store.IncrementSessionCycles(sid)
			}
		}
	case timer.EventTaskCompleted:
		if hasRow {
			f.store.CompleteSession(sid)
			delete(f.sessionIDs, ev.TaskID)
		}
	}

	text := ""
	switch ev.Kind {
	case timer.EventWorkEnded:
		text = fmt.Sprintf("%s: work done, take a break", ev.TaskName)
	case timer.EventRestEnded:
		if alive && s.Phase == timer.PhaseDone {
			text = fmt.Sprintf("%s: session finished", ev.TaskName)
		} else {
			text = fmt.Sprintf("%s: break over, cycle %d/%d ready", ev.TaskName, ev.Cycle, ev.Total)
		}
	case timer.EventTaskCompleted:
		text = fmt.Sprintf("%s: all cycles finished 🍅", ev.TaskName)
	}
	return func() tea.Msg { return statusMsg{text: text} }
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// State advances in the controller; the tick only triggers a
		// re-render.
		return f, nil

	case tea.KeyMsg:
		if !f.hasTask {
			return f, nil
		}
		s, ok := f.ctrl.Get(f.task.ID)

		switch {
		case key.Matches(msg, keys.Start):
			// Restarting always begins again at cycle one.
			if !ok || !s.Running || s.Phase == timer.PhaseDone {
				return f, f.begin(f.task)
			}
		case key.Matches(msg, keys.Enter):
			if !ok {
				return f, nil
			}
			switch s.Phase {
			case timer.PhaseRestReady:
				f.ctrl.StartRest(f.task.ID)
			case timer.PhaseNextReady:
				f.ctrl.AdvanceToNextCycle(f.task.ID)
			}
			return f, nil
		case key.Matches(msg, keys.Stop):
			if ok {
				f.ctrl.Stop(f.task.ID)
				f.cancelHistory(f.task.ID)
				return f, func() tea.Msg { return statusMsg{text: "Focus stopped"} }
			}
		case key.Matches(msg, keys.Reset):
			if ok {
				f.ctrl.Reset(f.task.ID)
				f.cancelHistory(f.task.ID)
				return f, func() tea.Msg { return statusMsg{text: "Focus reset"} }
			}
		}
	}
	return f, nil
}

func (f focusModel) view() string {
	w := f.width - 4

	title := titleStyle.Render("Focus")

	if !f.hasTask {
		content := lipgloss.JoinVertical(lipgloss.Center,
			title,
			"",
			mutedStyle.Render("Pick a task in the Tasks view and press enter."),
		)
		return panelStyle.Width(w).Render(content)
	}

	s, ok := f.ctrl.Get(f.task.ID)
	if !ok {
		content := lipgloss.JoinVertical(lipgloss.Center,
			title,
			"",
			highlightStyle.Render(f.task.Name),
			mutedStyle.Render("Press s to start"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var timeDisplay, phaseLabel string
	switch s.Phase {
	case timer.PhaseWork:
		timeDisplay = countdownWorkStyle.Width(w - 6).Render(timer.FormatRemaining(s.Remaining))
		phaseLabel = successStyle.Bold(true).Render("WORK")
	case timer.PhaseRest:
		timeDisplay = countdownRestStyle.Width(w - 6).Render(timer.FormatRemaining(s.Remaining))
		phaseLabel = highlightStyle.Bold(true).Render("REST")
	case timer.PhaseRestReady:
		timeDisplay = countdownStyle.Width(w - 6).Render(timer.FormatRemaining(f.ctrl.Config().Rest))
		phaseLabel = warningStyle.Bold(true).Render("BREAK READY")
	case timer.PhaseNextReady:
		timeDisplay = countdownStyle.Width(w - 6).Render(timer.FormatRemaining(f.ctrl.Config().Work))
		phaseLabel = warningStyle.Bold(true).Render("NEXT CYCLE READY")
	case timer.PhaseDone:
		timeDisplay = countdownWorkStyle.Width(w - 6).Render("Done!")
		phaseLabel = successStyle.Bold(true).Render("ALL CYCLES COMPLETE")
	}

	if !s.Running && s.Phase.Timed() {
		phaseLabel = warningStyle.Bold(true).Render("STOPPED — " + s.Phase.String())
	}

	taskLine := highlightStyle.Render(s.TaskName)

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		taskLine,
		"",
		renderCycleDots(s),
	)

	// Controls
	var controls string
	switch s.Phase {
	case timer.PhaseWork, timer.PhaseRest:
		if s.Running {
			controls = mutedStyle.Render("x: stop  r: reset")
		} else {
			controls = mutedStyle.Render("s: restart  r: reset")
		}
	case timer.PhaseRestReady:
		controls = mutedStyle.Render("enter: start break  x: stop  r: reset")
	case timer.PhaseNextReady:
		controls = mutedStyle.Render("enter: start next cycle  x: stop  r: reset")
	case timer.PhaseDone:
		controls = mutedStyle.Render("s: start over  r: reset")
	}

	style := panelStyle
	if s.Running {
		style = activePanelStyle
	}
	return style.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func renderCycleDots(s timer.Session) string {
	var parts []string
	for i := 1; i <= s.TotalCycles; i++ {
		switch {
		case i < s.CurrentCycle || s.Phase == timer.PhaseDone:
			parts = append(parts, successStyle.Render("●"))
		case i == s.CurrentCycle && s.Phase == timer.PhaseWork:
			parts = append(parts, successStyle.Render("◐"))
		case i == s.CurrentCycle:
			parts = append(parts, highlightStyle.Render("◯"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  cycle %d/%d", s.CurrentCycle, s.TotalCycles))
	return progress + counter
}
