package tui

import (
	"fmt"
	"strconv"

	"github.com/sadopc/swimlog/internal/practice"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewPractices
	viewStatistics
	viewSettings
)

var viewNames = []string{"Dashboard", "Practices", "Statistics", "Settings"}

// --- Messages ---

type practiceSavedMsg struct {
	record  *practice.Record
	created bool
}

type practiceDeletedMsg struct {
	id      int64
	deleted bool
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path  string
	count int
}

// --- Helpers ---

// formatMinutes renders a practice duration, e.g. "45m" or "1h 35m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func formatDistance(d float64, unit string) string {
	v := strconv.FormatFloat(d, 'f', -1, 64)
	if unit == "" {
		return v
	}
	return v + " " + unit
}

func notesText(notes *string) string {
	if notes == nil {
		return ""
	}
	return *notes
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
