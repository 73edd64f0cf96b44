package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/swimlog/internal/practice"
)

// Pool palette: lane blues with a warm accent for the odd stroke out.
var (
	colorPrimary   = lipgloss.Color("#1E88E5")
	colorSecondary = lipgloss.Color("#26C6DA")
	colorHighlight = lipgloss.Color("#90CAF9")
	colorAccent    = lipgloss.Color("#FF7043")
	colorWarning   = lipgloss.Color("#FFCA28")
	colorSuccess   = lipgloss.Color("#66BB6A")
	colorError     = lipgloss.Color("#EF5350")
	colorFg        = lipgloss.Color("#E3F2FD")
	colorMuted     = lipgloss.Color("#78909C")
	colorSubtle    = lipgloss.Color("#37474F")
)

// strokeColors gives every stroke its own lane colour in lists and charts.
var strokeColors = map[practice.Stroke]lipgloss.Color{
	practice.Freestyle:    colorPrimary,
	practice.Breaststroke: colorSecondary,
	practice.Backstroke:   colorHighlight,
	practice.Butterfly:    colorAccent,
	practice.IM:           colorWarning,
}

func strokeDot(s practice.Stroke) string {
	return fg(strokeColors[s]).Render("●")
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

var (
	activeTabStyle = fg(colorPrimary).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorMuted).Padding(0, 2)

	panelStyle       = boxed(colorSubtle)
	activePanelStyle = boxed(colorPrimary)

	statValueStyle = fg(colorHighlight).Bold(true)
	statLabelStyle = fg(colorMuted)

	titleStyle     = fg(colorFg).Bold(true)
	subtitleStyle  = fg(colorMuted).Italic(true)
	accentStyle    = fg(colorAccent)
	successStyle   = fg(colorSuccess)
	warningStyle   = fg(colorWarning)
	errorStyle     = fg(colorError).Bold(true)
	mutedStyle     = fg(colorMuted)
	highlightStyle = fg(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorMuted).Padding(0, 1)

	selectedItemStyle = fg(colorPrimary).Bold(true)
	normalItemStyle   = fg(colorFg)
)
