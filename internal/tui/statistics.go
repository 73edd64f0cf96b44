package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/swimlog/internal/practice"
)

type statsRange int

const (
	rangeWeek statsRange = iota
	rangeMonth
	rangeAll
)

var statsRangeNames = []string{"Week", "Month", "All time"}

type statisticsModel struct {
	svc    *practice.Service
	width  int
	height int
	now    func() time.Time

	mode   statsRange
	offset int // weeks or months back from the current one
	stats  practice.Statistics
	loaded bool

	chart barchart.Model
}

func newStatisticsModel(svc *practice.Service) statisticsModel {
	return statisticsModel{
		svc:   svc,
		now:   time.Now,
		chart: barchart.New(60, 12),
	}
}

func (s *statisticsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statisticsDataMsg struct {
	stats practice.Statistics
}

// dateRange returns the inclusive bounds of the selected period. Both are
// zero for all time.
func (s statisticsModel) dateRange() (time.Time, time.Time) {
	today := practice.Day(s.now())
	switch s.mode {
	case rangeWeek:
		start, end := weekRange(today)
		return start.AddDate(0, 0, -7*s.offset), end.AddDate(0, 0, -7*s.offset)
	case rangeMonth:
		start := time.Date(today.Year(), today.Month()-time.Month(s.offset), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
	return time.Time{}, time.Time{}
}

func (s statisticsModel) filter() practice.RangeFilter {
	if s.mode == rangeAll {
		return practice.RangeFilter{}
	}
	from, to := s.dateRange()
	return practice.RangeFilter{DateFrom: &from, DateTo: &to}
}

func (s statisticsModel) rangeLabel() string {
	if s.mode == rangeAll {
		return "All time"
	}
	from, to := s.dateRange()
	return fmt.Sprintf("%s – %s", from.Format("Jan 02"), to.Format("Jan 02, 2006"))
}

func (s statisticsModel) refresh() tea.Cmd {
	svc, f := s.svc, s.filter()
	return func() tea.Msg {
		stats, err := svc.Statistics(context.Background(), f)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Statistics error: %v", err), isError: true}
		}
		return statisticsDataMsg{stats: stats}
	}
}

func (s statisticsModel) update(msg tea.Msg) (statisticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statisticsDataMsg:
		s.stats = msg.stats
		s.loaded = true
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if s.mode == rangeAll {
				return s, nil
			}
			s.offset++
			return s, s.refresh()
		case key.Matches(msg, keys.Right):
			if s.offset > 0 {
				s.offset--
				return s, s.refresh()
			}
		case key.Matches(msg, keys.Range):
			s.mode = (s.mode + 1) % statsRange(len(statsRangeNames))
			s.offset = 0
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *statisticsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(practice.Strokes))
	for _, st := range practice.Strokes {
		bars = append(bars, barchart.BarData{
			Label: st.String(),
			Values: []barchart.BarValue{{
				Name:  st.String(),
				Value: float64(s.stats.StrokeDistribution[st]),
				Style: lipgloss.NewStyle().Foreground(strokeColors[st]),
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statisticsModel) view() string {
	w := s.width - 4

	var tabs []string
	for i, name := range statsRangeNames {
		if statsRange(i) == s.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ", modeTabs, "  ", mutedStyle.Render(s.rangeLabel()),
	)

	nav := mutedStyle.Render("  r: change range  ←/→: previous/next period")

	if !s.loaded || s.stats.TotalPractices == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header, "", mutedStyle.Render("  No practices in this period"), "", nav,
			),
		)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.renderSummary(), "", s.chart.View(), "", s.renderDistribution(), "", nav,
		),
	)
}

func (s statisticsModel) renderSummary() string {
	st := s.stats
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Practices", fmt.Sprintf("%d", st.TotalPractices)),
		statCard("Distance", formatDistance(st.TotalDistance, "")),
		statCard("Time", formatMinutes(st.TotalTimeMinutes)),
		statCard("Avg distance", fmt.Sprintf("%.2f", st.AverageDistancePerPractice)),
		statCard("Avg time", fmt.Sprintf("%.2f min", st.AverageTimePerPractice)),
		statCard("Most common", mostCommonLabel(st.MostCommonStroke)),
	)
}

func (s statisticsModel) renderDistribution() string {
	var items []string
	for _, st := range practice.Strokes {
		n := s.stats.StrokeDistribution[st]
		pct := 0.0
		if s.stats.TotalPractices > 0 {
			pct = float64(n) / float64(s.stats.TotalPractices) * 100
		}
		items = append(items, fmt.Sprintf("%s %s %d (%.0f%%)", strokeDot(st), st, n, pct))
	}
	return "  " + strings.Join(items, "  ")
}
