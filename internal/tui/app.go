package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/swimlog/internal/export"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	svc    *practice.Service
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	dashboard  dashboardModel
	practices  practicesModel
	statistics statisticsModel
	settings   settingsModel

	help        help.Model
	status      string
	statusError bool
}

// NewApp builds the UI over svc. Settings are read from and written to s,
// which is normally also the repository behind svc.
func NewApp(svc *practice.Service, s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return App{
		svc:        svc,
		store:      s,
		activeView: viewDashboard,
		exportDir:  home,
		dashboard:  newDashboardModel(svc, s),
		practices:  newPracticesModel(svc, s),
		statistics: newStatisticsModel(svc),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.loadData()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.practices.setSize(a.width, contentHeight)
		a.statistics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPractices
			return a, a.practices.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStatistics
			return a, a.statistics.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case practiceSavedMsg:
		a.statusError = false
		if msg.record == nil {
			a.status = "Practice no longer exists"
		} else if msg.created {
			a.status = fmt.Sprintf("Practice #%d logged", msg.record.ID)
		} else {
			a.status = fmt.Sprintf("Practice #%d updated", msg.record.ID)
		}
		return a, tea.Batch(a.practices.refresh(), a.dashboard.loadData())

	case practiceDeletedMsg:
		a.statusError = false
		a.status = fmt.Sprintf("Practice #%d deleted", msg.id)
		if !msg.deleted {
			a.status = fmt.Sprintf("Practice #%d was already gone", msg.id)
		}
		return a, tea.Batch(a.practices.refresh(), a.dashboard.loadData())

	case exportDoneMsg:
		a.status = fmt.Sprintf("Exported %d practices to %s", msg.count, msg.path)
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewPractices:
		a.practices, cmd = a.practices.update(msg)
	case viewStatistics:
		a.statistics, cmd = a.statistics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewPractices:
		return a.practices.formActive || a.practices.confirmDelete
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewPractices:
		return a.practices.refresh()
	case viewStatistics:
		return a.statistics.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewPractices:
		content = a.practices.view()
	case viewStatistics:
		content = a.statistics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("swimlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Practices")
	scope := mutedStyle.Render("Range: " + a.statistics.rangeLabel())
	rows := []string{title, scope, ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the practices of the statistics view's current range to
// the export directory.
func (a App) doExport(format int) tea.Cmd {
	svc, s, dir := a.svc, a.store, a.exportDir
	rng := a.statistics.filter()
	return func() tea.Msg {
		records, err := svc.PracticesInRange(context.Background(), rng)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		unit := s.DistanceUnit()
		dateStr := time.Now().Format(practice.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("swimlog-export-%s.csv", dateStr))
			if err := export.ToCSV(records, unit, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("swimlog-export-%s.json", dateStr))
			if err := export.ToJSON(records, unit, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path, count: len(records)}
	}
}
