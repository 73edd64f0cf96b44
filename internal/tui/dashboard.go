package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
)

const recentLimit = 5

type dashboardModel struct {
	svc    *practice.Service
	store  *store.Store
	width  int
	height int
	now    func() time.Time

	week   practice.Statistics
	recent []practice.Record
	unit   string
	err    error
}

func newDashboardModel(svc *practice.Service, s *store.Store) dashboardModel {
	return dashboardModel{
		svc:   svc,
		store: s,
		now:   time.Now,
		unit:  "m",
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	week   practice.Statistics
	recent []practice.Record
	unit   string
	err    error
}

// weekRange returns Monday through Sunday of the week containing now.
func weekRange(now time.Time) (time.Time, time.Time) {
	today := practice.Day(now)
	weekday := today.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	start := today.AddDate(0, 0, -int(weekday-time.Monday))
	return start, start.AddDate(0, 0, 6)
}

func (d dashboardModel) loadData() tea.Cmd {
	svc, s := d.svc, d.store
	from, to := weekRange(d.now())
	return func() tea.Msg {
		ctx := context.Background()
		week, err := svc.Statistics(ctx, practice.RangeFilter{DateFrom: &from, DateTo: &to})
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		limit := recentLimit
		recent, err := svc.ListPractices(ctx, practice.ListFilter{Limit: &limit})
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		return dashboardDataMsg{week: week, recent: recent, unit: s.DistanceUnit()}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.err = msg.err
		if msg.err == nil {
			d.week = msg.week
			d.recent = msg.recent
			d.unit = msg.unit
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	if d.err != nil {
		return panelStyle.Width(contentWidth).Render(errorStyle.Render(fmt.Sprintf("Could not load practices: %v", d.err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderWeekPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderWeekPanel(w int) string {
	from, to := weekRange(d.now())
	title := titleStyle.Render("This Week")
	span := mutedStyle.Render(fmt.Sprintf("%s – %s", from.Format("Jan 02"), to.Format("Jan 02")))
	header := fmt.Sprintf("%s  %s", title, span)

	if d.week.TotalPractices == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No practices this week. Press 2 then n to log one."),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Practices", fmt.Sprintf("%d", d.week.TotalPractices)),
		statCard("Distance", formatDistance(d.week.TotalDistance, d.unit)),
		statCard("Time", formatMinutes(d.week.TotalTimeMinutes)),
		statCard("Main stroke", mostCommonLabel(d.week.MostCommonStroke)),
	)

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", cards))
}

func statCard(label, value string) string {
	return lipgloss.NewStyle().Width(18).Render(
		lipgloss.JoinVertical(lipgloss.Left, statValueStyle.Render(value), statLabelStyle.Render(label)),
	)
}

func mostCommonLabel(s *practice.Stroke) string {
	if s == nil {
		return "–"
	}
	return s.String()
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Practices")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No practices yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title}
	for _, r := range d.recent {
		row := fmt.Sprintf("  %s %s  %-13s %8s  %s",
			strokeDot(r.MainStroke),
			practice.FormatDate(r.Date),
			r.MainStroke,
			formatMinutes(r.DurationMinutes),
			formatDistance(r.TotalDistance, d.unit),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
