package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"tomato/internal/config"
)

type settingsModel struct {
	cfg    *config.Config
	apply  func(config.Config) error
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	workMinutes   *string
	restMinutes   *string
	sound         *bool
	notifications *bool
}

func newSettingsModel(cfg *config.Config, apply func(config.Config) error) settingsModel {
	wm, rm := "", ""
	snd, ntf := false, false
	return settingsModel{
		cfg:           cfg,
		apply:         apply,
		workMinutes:   &wm,
		restMinutes:   &rm,
		sound:         &snd,
		notifications: &ntf,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.workMinutes = strconv.Itoa(s.cfg.WorkMinutes)
	*s.restMinutes = strconv.Itoa(s.cfg.RestMinutes)
	*s.sound = s.cfg.Sound
	*s.notifications = s.cfg.Notifications

	validateMinutes := func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("enter minutes (1 or more)")
		}
		return nil
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work phase (min)").Value(s.workMinutes).Validate(validateMinutes),
			huh.NewInput().Title("Rest phase (min)").Value(s.restMinutes).Validate(validateMinutes),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewConfirm().Title("Sound alerts").Value(s.sound),
			huh.NewConfirm().Title("Desktop notifications").Value(s.notifications),
		).Title("Alerts"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	next := *s.cfg
	if n, err := strconv.Atoi(*s.workMinutes); err == nil && n > 0 {
		next.WorkMinutes = n
	}
	if n, err := strconv.Atoi(*s.restMinutes); err == nil && n > 0 {
		next.RestMinutes = n
	}
	next.Sound = *s.sound
	next.Notifications = *s.notifications

	if err := s.apply(next); err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save failed: %v", err), isError: true}
		}
	}
	*s.cfg = next
	return func() tea.Msg { return statusMsg{text: "Settings saved"} }
}

func (s settingsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render(label), value)
	}

	rows := []string{
		title,
		"",
		row("Work phase", highlightStyle.Render(fmt.Sprintf("%d min", s.cfg.WorkMinutes))),
		row("Rest phase", highlightStyle.Render(fmt.Sprintf("%d min", s.cfg.RestMinutes))),
		row("Sound alerts", onOff(s.cfg.Sound)),
		row("Desktop notifications", onOff(s.cfg.Notifications)),
		"",
		mutedStyle.Render("Press enter to edit"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
