package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
)

type practicesModel struct {
	svc    *practice.Service
	store  *store.Store
	width  int
	height int
	now    func() time.Time

	records  []practice.Record
	cursor   int
	page     int
	pageSize int
	hasNext  bool
	stroke   *practice.Stroke // history filter, nil shows every stroke
	unit     string

	confirmDelete bool

	formActive bool
	form       *huh.Form
	editingID  int64 // 0 while creating

	// Form field pointers (survive value copies)
	formDate     *string
	formDuration *string
	formDistance *string
	formStroke   *string
	formNotes    *string
}

func newPracticesModel(svc *practice.Service, s *store.Store) practicesModel {
	date, duration, distance, stroke, notes := "", "", "", "", ""
	return practicesModel{
		svc:          svc,
		store:        s,
		now:          time.Now,
		pageSize:     s.PageSize(),
		unit:         "m",
		formDate:     &date,
		formDuration: &duration,
		formDistance: &distance,
		formStroke:   &stroke,
		formNotes:    &notes,
	}
}

func (p *practicesModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type practicesDataMsg struct {
	records  []practice.Record
	pageSize int
	unit     string
}

// listFilter asks for one row past the page so the view knows whether a
// next page exists.
func (p practicesModel) listFilter(pageSize int) practice.ListFilter {
	limit := pageSize + 1
	offset := p.page * pageSize
	return practice.ListFilter{StrokeType: p.stroke, Limit: &limit, Offset: &offset}
}

func (p practicesModel) refresh() tea.Cmd {
	svc, s := p.svc, p.store
	size := s.PageSize()
	filter := p.listFilter(size)
	return func() tea.Msg {
		records, err := svc.ListPractices(context.Background(), filter)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return practicesDataMsg{records: records, pageSize: size, unit: s.DistanceUnit()}
	}
}

func (p practicesModel) update(msg tea.Msg) (practicesModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case practicesDataMsg:
		p.pageSize = msg.pageSize
		p.unit = msg.unit
		p.hasNext = len(msg.records) > msg.pageSize
		if p.hasNext {
			msg.records = msg.records[:msg.pageSize]
		}
		p.records = msg.records
		// Deleting the last row of a page leaves it empty; step back.
		if len(p.records) == 0 && p.page > 0 {
			p.page--
			return p, p.refresh()
		}
		if p.cursor >= len(p.records) {
			p.cursor = max(0, len(p.records)-1)
		}
		return p, nil

	case tea.KeyMsg:
		if p.confirmDelete {
			return p.updateConfirm(msg)
		}
		return p.updateList(msg)
	}
	return p, nil
}

func (p practicesModel) updateList(msg tea.KeyMsg) (practicesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.records)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Left):
		if p.page > 0 {
			p.page--
			p.cursor = 0
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Right):
		if p.hasNext {
			p.page++
			p.cursor = 0
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Filter):
		p.stroke = nextStrokeFilter(p.stroke)
		p.page = 0
		p.cursor = 0
		return p, p.refresh()
	case key.Matches(msg, keys.New):
		return p.showNewForm()
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if len(p.records) > 0 {
			return p.showEditForm()
		}
	case key.Matches(msg, keys.Delete):
		if len(p.records) > 0 {
			p.confirmDelete = true
		}
	}
	return p, nil
}

func (p practicesModel) updateConfirm(msg tea.KeyMsg) (practicesModel, tea.Cmd) {
	p.confirmDelete = false
	if !key.Matches(msg, keys.Confirm) || p.cursor >= len(p.records) {
		return p, nil
	}
	svc, id := p.svc, p.records[p.cursor].ID
	return p, func() tea.Msg {
		deleted, err := svc.DeletePractice(context.Background(), id)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
		}
		return practiceDeletedMsg{id: id, deleted: deleted}
	}
}

// nextStrokeFilter cycles all → Freestyle → … → IM → all.
func nextStrokeFilter(cur *practice.Stroke) *practice.Stroke {
	if cur == nil {
		s := practice.Strokes[0]
		return &s
	}
	if int(*cur) >= len(practice.Strokes)-1 {
		return nil
	}
	s := *cur + 1
	return &s
}

func (p practicesModel) showNewForm() (practicesModel, tea.Cmd) {
	*p.formDate = practice.FormatDate(p.now())
	*p.formDuration = ""
	*p.formDistance = ""
	*p.formStroke = p.store.DefaultStroke().String()
	*p.formNotes = ""
	p.editingID = 0
	return p.openForm()
}

func (p practicesModel) showEditForm() (practicesModel, tea.Cmd) {
	r := p.records[p.cursor]
	*p.formDate = practice.FormatDate(r.Date)
	*p.formDuration = strconv.Itoa(r.DurationMinutes)
	*p.formDistance = strconv.FormatFloat(r.TotalDistance, 'f', -1, 64)
	*p.formStroke = r.MainStroke.String()
	*p.formNotes = notesText(r.Notes)
	p.editingID = r.ID
	return p.openForm()
}

func (p practicesModel) openForm() (practicesModel, tea.Cmd) {
	strokeOptions := make([]huh.Option[string], 0, len(practice.Strokes))
	for _, s := range practice.Strokes {
		strokeOptions = append(strokeOptions, huh.NewOption(s.String(), s.String()))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(p.formDate).Validate(validateDate),
			huh.NewInput().Title("Duration (minutes)").Value(p.formDuration).Validate(validateDuration),
			huh.NewInput().Title(fmt.Sprintf("Total distance (%s)", p.unit)).Value(p.formDistance).Validate(validateDistance),
			huh.NewSelect[string]().Title("Main stroke").Options(strokeOptions...).Value(p.formStroke),
			huh.NewText().Title("Notes").CharLimit(500).Value(p.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p practicesModel) updateForm(msg tea.Msg) (practicesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		in, err := parsePracticeForm(*p.formDate, *p.formDuration, *p.formDistance, *p.formStroke, *p.formNotes)
		if err != nil {
			return p, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
		}
		return p, p.save(in)
	}

	return p, cmd
}

func (p practicesModel) save(in practice.CreateInput) tea.Cmd {
	svc, id := p.svc, p.editingID
	return func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			rec, err := svc.CreatePractice(ctx, in)
			if err != nil {
				return statusMsg{text: saveErrorText(err), isError: true}
			}
			return practiceSavedMsg{record: rec, created: true}
		}
		rec, err := svc.UpdatePractice(ctx, practice.UpdateInput{
			ID:              id,
			Date:            &in.Date,
			DurationMinutes: &in.DurationMinutes,
			TotalDistance:   &in.TotalDistance,
			MainStroke:      &in.MainStroke,
			Notes:           practice.SetNotes(in.Notes),
		})
		if err != nil {
			return statusMsg{text: saveErrorText(err), isError: true}
		}
		return practiceSavedMsg{record: rec}
	}
}

func saveErrorText(err error) string {
	var verr *practice.ValidationError
	if errors.As(err, &verr) {
		return "Invalid practice: " + verr.Error()
	}
	return fmt.Sprintf("Save error: %v", err)
}

// parsePracticeForm converts the raw form fields into a create input.
func parsePracticeForm(date, duration, distance, stroke, notes string) (practice.CreateInput, error) {
	d, err := practice.ParseDate(date)
	if err != nil {
		return practice.CreateInput{}, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return practice.CreateInput{}, errors.New("duration must be a whole number of minutes")
	}
	dist, err := strconv.ParseFloat(strings.TrimSpace(distance), 64)
	if err != nil {
		return practice.CreateInput{}, errors.New("distance must be a number")
	}
	s, err := practice.ParseStroke(stroke)
	if err != nil {
		return practice.CreateInput{}, err
	}
	in := practice.CreateInput{
		Date:            d,
		DurationMinutes: minutes,
		TotalDistance:   dist,
		MainStroke:      s,
		Notes:           practice.NormalizeNotes(&notes),
	}
	return in, in.Validate()
}

func validateDate(s string) error {
	_, err := practice.ParseDate(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number of minutes")
	}
	return nil
}

func validateDistance(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive distance")
	}
	return nil
}

func (p practicesModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Practice")
		if p.editingID != 0 {
			title = titleStyle.Render(fmt.Sprintf("Edit Practice #%d", p.editingID))
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}
	return p.renderList(w)
}

func (p practicesModel) filterLabel() string {
	if p.stroke == nil {
		return "All strokes"
	}
	return p.stroke.String()
}

func (p practicesModel) renderList(w int) string {
	title := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Practices"), "  ",
		highlightStyle.Render(p.filterLabel()), "  ",
		mutedStyle.Render(fmt.Sprintf("page %d", p.page+1)),
	)

	if len(p.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No practices found. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title, ""}
	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-11s %-13s %9s %12s  %s", "", "Date", "Stroke", "Duration", "Distance", "Notes"))
	rows = append(rows, header)

	notesWidth := max(10, w-70)
	for i, r := range p.records {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s %-11s %-13s %9s %12s  %s",
			cursor,
			strokeDot(r.MainStroke),
			practice.FormatDate(r.Date),
			r.MainStroke,
			formatMinutes(r.DurationMinutes),
			formatDistance(r.TotalDistance, p.unit),
			truncate(notesText(r.Notes), notesWidth),
		)
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "")
	if p.confirmDelete && p.cursor < len(p.records) {
		r := p.records[p.cursor]
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Delete practice of %s? y: confirm  any key: cancel", practice.FormatDate(r.Date))))
	} else {
		nav := "  n: new  e: edit  d: delete  f: filter"
		if p.page > 0 || p.hasNext {
			nav += "  ←/→: page"
		}
		rows = append(rows, mutedStyle.Render(nav))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
