package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"tomato/internal/store"
	"tomato/internal/timer"
)

type tasksModel struct {
	store  *store.Store
	ctrl   *timer.Controller
	width  int
	height int

	tasks  []store.Task
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "task", "edit_task"

	// Form field pointers (survive value copies)
	formName     *string
	formDuration *string

	editingID int64
}

func newTasksModel(s *store.Store, ctrl *timer.Controller) tasksModel {
	name, duration := "", ""
	return tasksModel{
		store:        s,
		ctrl:         ctrl,
		formName:     &name,
		formDuration: &duration,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, _ := m.store.ListTasks(false)
		return tasksDataMsg{tasks: tasks}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewTaskForm()
		case key.Matches(msg, keys.Edit):
			if len(m.tasks) > 0 {
				return m.showEditTaskForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.tasks) > 0 {
				task := m.tasks[m.cursor]
				m.ctrl.Reset(task.ID)
				m.store.ArchiveTask(task.ID)
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Complete):
			if len(m.tasks) > 0 {
				task := m.tasks[m.cursor]
				if task.Completed {
					m.store.ReopenTask(task.ID)
				} else {
					m.store.CompleteTask(task.ID)
				}
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Start):
			if len(m.tasks) > 0 {
				task := m.tasks[m.cursor]
				return m, func() tea.Msg { return focusRequestMsg{task: task} }
			}
		}
	}
	return m, nil
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formName = ""
	*m.formDuration = "30"
	m.formType = "task"
	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showEditTaskForm() (tasksModel, tea.Cmd) {
	task := m.tasks[m.cursor]
	*m.formName = task.Name
	*m.formDuration = strconv.Itoa(task.DurationMinutes)
	m.formType = "edit_task"
	m.editingID = task.ID
	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(m.formName),
			huh.NewInput().Title("Duration (minutes)").Value(m.formDuration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number of minutes")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		minutes, _ := strconv.Atoi(*m.formDuration)
		switch m.formType {
		case "task":
			if *m.formName != "" && minutes > 0 {
				m.store.CreateTask(*m.formName, minutes)
			}
		case "edit_task":
			if *m.formName != "" && minutes > 0 {
				m.store.UpdateTask(m.editingID, *m.formName, minutes)
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

// selected returns the task under the cursor.
func (m tasksModel) selected() (store.Task, bool) {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return store.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "edit_task" {
			title = titleStyle.Render("Edit Task")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")

	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	// Table header
	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %10s %8s %12s", "", "Name", "Duration", "Cycles", "Timer"))
	rows = append(rows, header)

	sessions := m.ctrl.Snapshot()
	for i, task := range m.tasks {
		status := "○"
		if task.Completed {
			status = successStyle.Render("✓")
		}
		timerCol := ""
		if s, ok := sessions[task.ID]; ok {
			timerCol = renderSessionBadge(s)
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-28s %7dmin %8d", cursor, status, task.Name, task.DurationMinutes, timer.CyclesFor(task.DurationMinutes)))
		if timerCol != "" {
			row += " " + timerCol
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter/s: focus  n: new  e: edit  c: toggle done  d: archive"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderSessionBadge shows a compact live-timer indicator next to a task.
func renderSessionBadge(s timer.Session) string {
	switch {
	case s.Running && s.Phase == timer.PhaseWork:
		return successStyle.Render("● " + timer.FormatRemaining(s.Remaining))
	case s.Running && s.Phase == timer.PhaseRest:
		return highlightStyle.Render("☕ " + timer.FormatRemaining(s.Remaining))
	case s.Phase == timer.PhaseDone:
		return successStyle.Render("done")
	default:
		return warningStyle.Render("⏸ " + s.Phase.String())
	}
}
