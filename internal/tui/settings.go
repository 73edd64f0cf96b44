package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
)

var settingLabels = map[string]string{
	store.SettingDefaultStroke: "Default stroke",
	store.SettingDistanceUnit:  "Distance unit",
	store.SettingPageSize:      "Practices per page",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultStroke *string
	distanceUnit  *string
	pageSize      *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ds, du, ps := "", "", ""
	return settingsModel{
		store:         s,
		defaultStroke: &ds,
		distanceUnit:  &du,
		pageSize:      &ps,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		settings, err := st.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.defaultStroke = s.store.DefaultStroke().String()
	*s.distanceUnit = s.store.DistanceUnit()
	*s.pageSize = strconv.Itoa(s.store.PageSize())

	strokeOptions := make([]huh.Option[string], 0, len(practice.Strokes))
	for _, name := range practice.StrokeNames() {
		strokeOptions = append(strokeOptions, huh.NewOption(name, name))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default stroke").Options(strokeOptions...).Value(s.defaultStroke),
			huh.NewSelect[string]().Title("Distance unit").
				Options(
					huh.NewOption("Meters", "m"),
					huh.NewOption("Yards", "yd"),
				).Value(s.distanceUnit),
			huh.NewInput().Title("Practices per page").Value(s.pageSize).Validate(validatePageSize),
		).Title("Practice log"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validatePageSize(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 || n > 200 {
		return errors.New("enter a number between 1 and 200")
	}
	return nil
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
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg { return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true} }
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := []store.Setting{
		{Key: store.SettingDefaultStroke, Value: *s.defaultStroke},
		{Key: store.SettingDistanceUnit, Value: *s.distanceUnit},
		{Key: store.SettingPageSize, Value: strings.TrimSpace(*s.pageSize)},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(formatSettingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingLabel(k string) string {
	if label, ok := settingLabels[k]; ok {
		return label
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingDistanceUnit:
		switch v {
		case "m":
			return "meters"
		case "yd":
			return "yards"
		}
	case store.SettingPageSize:
		return v + " rows"
	}
	return v
}
