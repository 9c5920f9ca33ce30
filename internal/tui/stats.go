package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tomato/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	daily  []store.DailyCycles
	stats  store.SessionStats
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	daily []store.DailyCycles
	stats store.SessionStats
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()
		daily, _ := m.store.GetDailyCycles(from, to)
		stats, _ := m.store.GetSessionStats(from, to)
		return statsDataMsg{daily: daily, stats: stats}
	}
}

func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*m.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.daily = msg.daily
		m.stats = msg.stats
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, dc := range m.daily {
			if dc.Date == dateStr {
				values = append(values, barchart.BarValue{
					Name:  "cycles",
					Value: float64(dc.Cycles),
					Style: lipgloss.NewStyle().Foreground(colorPrimary),
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	chartView := m.chart.View()

	totals := m.renderTotals()

	tableView := m.renderDailyTable(w)

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", totals, "", tableView, "", nav,
		),
	)
}

func (m statsModel) renderTotals() string {
	completedPct := 0
	if m.stats.TotalSessions > 0 {
		completedPct = m.stats.CompletedSessions * 100 / m.stats.TotalSessions
	}
	return fmt.Sprintf("  %s %s   %s %s   %s %s",
		highlightStyle.Render("Cycles:"),
		fmt.Sprintf("%d", m.stats.TotalCycles),
		highlightStyle.Render("Focus time:"),
		formatSeconds(m.stats.FocusSeconds),
		highlightStyle.Render("Sessions:"),
		fmt.Sprintf("%d (%d%% completed)", m.stats.TotalSessions, completedPct),
	)
}

func (m statsModel) renderDailyTable(w int) string {
	if len(m.daily) == 0 {
		return mutedStyle.Render("  No sessions in this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %8s %10s", "Date", "Cycles", "Sessions"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 34))))

	for _, dc := range m.daily {
		rows = append(rows, fmt.Sprintf("  %-12s %8d %10d", dc.Date, dc.Cycles, dc.Sessions))
	}

	return strings.Join(rows, "\n")
}
