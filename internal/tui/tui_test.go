package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/swimlog/internal/logging"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T) (*practice.Service, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return practice.NewService(s, logging.Discard()), s
}

func addPractice(t *testing.T, svc *practice.Service, date string, stroke practice.Stroke, distance float64) *practice.Record {
	t.Helper()
	d, err := practice.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := svc.CreatePractice(context.Background(), practice.CreateInput{
		Date:            d,
		DurationMinutes: 45,
		TotalDistance:   distance,
		MainStroke:      stroke,
	})
	if err != nil {
		t.Fatalf("create practice: %v", err)
	}
	return rec
}

func fixedNow(date string) func() time.Time {
	d, _ := time.Parse(practice.DateLayout, date)
	return func() time.Time { return d.Add(15 * time.Hour) }
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := formatDistance(1500, "m"); got != "1500 m" {
		t.Fatalf("got %q", got)
	}
	if got := formatDistance(2000.5, "yd"); got != "2000.5 yd" {
		t.Fatalf("got %q", got)
	}
	if got := formatDistance(800, ""); got != "800" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a long note about kicks", 6); got != "a lon…" {
		t.Fatalf("got %q", got)
	}
}

func TestNextStrokeFilter(t *testing.T) {
	var cur *practice.Stroke
	var seen []string
	for range len(practice.Strokes) + 1 {
		cur = nextStrokeFilter(cur)
		if cur == nil {
			seen = append(seen, "all")
		} else {
			seen = append(seen, cur.String())
		}
	}
	want := "Freestyle,Breaststroke,Backstroke,Butterfly,IM,all"
	if got := strings.Join(seen, ","); got != want {
		t.Fatalf("cycle = %s, want %s", got, want)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		now, from, to string
	}{
		{"2024-01-17", "2024-01-15", "2024-01-21"}, // Wednesday
		{"2024-01-15", "2024-01-15", "2024-01-21"}, // Monday
		{"2024-01-21", "2024-01-15", "2024-01-21"}, // Sunday
	}
	for _, tt := range tests {
		from, to := weekRange(fixedNow(tt.now)())
		if practice.FormatDate(from) != tt.from || practice.FormatDate(to) != tt.to {
			t.Errorf("weekRange(%s) = %s..%s, want %s..%s", tt.now,
				practice.FormatDate(from), practice.FormatDate(to), tt.from, tt.to)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewStatistics] != "Statistics" {
		t.Fatalf("viewNames[viewStatistics] = %q", viewNames[viewStatistics])
	}
}

// ============================================================
// Practice form
// ============================================================

func TestParsePracticeForm(t *testing.T) {
	in, err := parsePracticeForm("2024-01-15", "45", "1500", "Butterfly", "  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if practice.FormatDate(in.Date) != "2024-01-15" || in.DurationMinutes != 45 || in.TotalDistance != 1500 {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.MainStroke != practice.Butterfly {
		t.Fatalf("stroke = %v", in.MainStroke)
	}
	if in.Notes != nil {
		t.Fatal("blank notes should be absent")
	}

	in, err = parsePracticeForm("2024-01-15", " 30 ", "800.5", "IM", "drills")
	if err != nil {
		t.Fatal(err)
	}
	if in.Notes == nil || *in.Notes != "drills" || in.TotalDistance != 800.5 {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestParsePracticeFormErrors(t *testing.T) {
	tests := []struct {
		name                             string
		date, duration, distance, stroke string
	}{
		{"bad date", "15/01/2024", "45", "1500", "Freestyle"},
		{"bad duration", "2024-01-15", "forty", "1500", "Freestyle"},
		{"zero duration", "2024-01-15", "0", "1500", "Freestyle"},
		{"bad distance", "2024-01-15", "45", "far", "Freestyle"},
		{"negative distance", "2024-01-15", "45", "-5", "Freestyle"},
		{"bad stroke", "2024-01-15", "45", "1500", "Sidestroke"},
	}
	for _, tt := range tests {
		if _, err := parsePracticeForm(tt.date, tt.duration, tt.distance, tt.stroke, ""); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	_, err := parsePracticeForm("2024-01-15", "0", "1500", "Freestyle", "")
	var verr *practice.ValidationError
	if !errors.As(err, &verr) || verr.Field != "duration_minutes" {
		t.Fatalf("expected duration validation error, got %v", err)
	}
}

func TestFormValidators(t *testing.T) {
	if validateDate("2024-02-30") == nil {
		t.Fatal("impossible date should fail")
	}
	if validateDate("2024-02-29") != nil {
		t.Fatal("leap day should pass")
	}
	if validateDuration("0") == nil || validateDuration("15") != nil {
		t.Fatal("duration validator wrong")
	}
	if validateDistance("0") == nil || validateDistance("25.5") != nil {
		t.Fatal("distance validator wrong")
	}
	if validatePageSize("0") == nil || validatePageSize("25") != nil {
		t.Fatal("page size validator wrong")
	}
}

// ============================================================
// Practices view
// ============================================================

func loadPractices(t *testing.T, p practicesModel) practicesModel {
	t.Helper()
	msg := p.refresh()()
	if sm, ok := msg.(statusMsg); ok {
		t.Fatalf("refresh failed: %s", sm.text)
	}
	p, _ = p.update(msg)
	return p
}

func TestPracticesPaging(t *testing.T) {
	svc, s := newTestService(t)
	s.SetSetting(store.SettingPageSize, "2")
	addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-01-11", practice.Backstroke, 1200)
	addPractice(t, svc, "2024-01-12", practice.IM, 1400)

	p := loadPractices(t, newPracticesModel(svc, s))
	if len(p.records) != 2 || !p.hasNext {
		t.Fatalf("page 1: %d records, hasNext=%v", len(p.records), p.hasNext)
	}
	if practice.FormatDate(p.records[0].Date) != "2024-01-12" {
		t.Fatalf("expected most recent first, got %s", practice.FormatDate(p.records[0].Date))
	}

	p, cmd := p.update(tea.KeyMsg{Type: tea.KeyRight})
	if p.page != 1 || cmd == nil {
		t.Fatalf("right arrow should advance to page 2")
	}
	p, _ = p.update(cmd())
	if len(p.records) != 1 || p.hasNext {
		t.Fatalf("page 2: %d records, hasNext=%v", len(p.records), p.hasNext)
	}
	if practice.FormatDate(p.records[0].Date) != "2024-01-10" {
		t.Fatalf("page 2 should hold the oldest practice")
	}

	// No page past the end.
	p, cmd = p.update(tea.KeyMsg{Type: tea.KeyRight})
	if p.page != 1 || cmd != nil {
		t.Fatal("should not page past the last page")
	}

	p, cmd = p.update(tea.KeyMsg{Type: tea.KeyLeft})
	if p.page != 0 || cmd == nil {
		t.Fatal("left arrow should go back")
	}
}

func TestPracticesStrokeFilter(t *testing.T) {
	svc, s := newTestService(t)
	addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-01-11", practice.Backstroke, 1200)

	p := newPracticesModel(svc, s)
	p.setSize(120, 40)
	p = loadPractices(t, p)
	if len(p.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(p.records))
	}

	p, cmd := p.update(runeKey('f'))
	if p.stroke == nil || *p.stroke != practice.Freestyle {
		t.Fatalf("first filter step should be Freestyle")
	}
	p, _ = p.update(cmd())
	if len(p.records) != 1 || p.records[0].MainStroke != practice.Freestyle {
		t.Fatalf("filter not applied: %+v", p.records)
	}
	if !strings.Contains(p.view(), "Freestyle") {
		t.Fatal("view should show the active filter")
	}
}

func TestPracticesCursor(t *testing.T) {
	svc, s := newTestService(t)
	addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-01-11", practice.Backstroke, 1200)
	p := loadPractices(t, newPracticesModel(svc, s))

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", p.cursor)
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", p.cursor)
	}
}

func TestPracticesDeleteConfirm(t *testing.T) {
	svc, s := newTestService(t)
	rec := addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	p := newPracticesModel(svc, s)
	p.setSize(120, 40)
	p = loadPractices(t, p)

	p, cmd := p.update(runeKey('d'))
	if !p.confirmDelete || cmd != nil {
		t.Fatal("d should ask for confirmation first")
	}
	if !strings.Contains(p.view(), "Delete practice of 2024-01-10?") {
		t.Fatal("confirmation prompt missing")
	}

	p, cmd = p.update(runeKey('y'))
	if p.confirmDelete || cmd == nil {
		t.Fatal("y should confirm")
	}
	msg, ok := cmd().(practiceDeletedMsg)
	if !ok || !msg.deleted || msg.id != rec.ID {
		t.Fatalf("unexpected delete result %+v", msg)
	}
	got, _ := svc.GetPractice(context.Background(), rec.ID)
	if got != nil {
		t.Fatal("practice should be gone")
	}
}

func TestPracticesDeleteCancel(t *testing.T) {
	svc, s := newTestService(t)
	rec := addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	p := loadPractices(t, newPracticesModel(svc, s))

	p, _ = p.update(runeKey('d'))
	p, cmd := p.update(runeKey('n'))
	if p.confirmDelete || cmd != nil {
		t.Fatal("any other key should cancel")
	}
	got, _ := svc.GetPractice(context.Background(), rec.ID)
	if got == nil {
		t.Fatal("practice should still exist")
	}
}

func TestPracticesNewFormDefaults(t *testing.T) {
	svc, s := newTestService(t)
	s.SetSetting(store.SettingDefaultStroke, "Butterfly")

	p := newPracticesModel(svc, s)
	p.now = fixedNow("2024-03-05")
	p, cmd := p.update(runeKey('n'))
	if !p.formActive || p.form == nil || cmd == nil {
		t.Fatal("n should open the form")
	}
	if *p.formDate != "2024-03-05" {
		t.Fatalf("date default = %q, want today", *p.formDate)
	}
	if *p.formStroke != "Butterfly" {
		t.Fatalf("stroke default = %q, want Butterfly", *p.formStroke)
	}
	if p.editingID != 0 {
		t.Fatal("new form should not be editing")
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.formActive {
		t.Fatal("esc should cancel the form")
	}
}

func TestPracticesEditFormPrefill(t *testing.T) {
	svc, s := newTestService(t)
	notes := "pull buoy"
	d, _ := practice.ParseDate("2024-01-10")
	rec, err := svc.CreatePractice(context.Background(), practice.CreateInput{
		Date: d, DurationMinutes: 50, TotalDistance: 2250.5, MainStroke: practice.IM, Notes: &notes,
	})
	if err != nil {
		t.Fatal(err)
	}
	p := newPracticesModel(svc, s)
	p.setSize(120, 40)
	p = loadPractices(t, p)

	p, _ = p.update(runeKey('e'))
	if !p.formActive || p.editingID != rec.ID {
		t.Fatal("e should open the edit form")
	}
	if *p.formDuration != "50" || *p.formDistance != "2250.5" || *p.formStroke != "IM" || *p.formNotes != "pull buoy" {
		t.Fatalf("form not prefilled: %s %s %s %s", *p.formDuration, *p.formDistance, *p.formStroke, *p.formNotes)
	}
	if !strings.Contains(p.view(), "Edit Practice") {
		t.Fatal("edit title missing")
	}
}

func TestPracticesSaveCreate(t *testing.T) {
	svc, s := newTestService(t)
	p := newPracticesModel(svc, s)

	in, err := parsePracticeForm("2024-01-15", "45", "1500", "Freestyle", "")
	if err != nil {
		t.Fatal(err)
	}
	msg, ok := p.save(in)().(practiceSavedMsg)
	if !ok || !msg.created || msg.record == nil {
		t.Fatalf("unexpected save result %+v", msg)
	}
	if msg.record.ID <= 0 || msg.record.TotalDistance != 1500 {
		t.Fatalf("unexpected record %+v", msg.record)
	}
}

func TestPracticesSaveEdit(t *testing.T) {
	svc, s := newTestService(t)
	rec := addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	notes := "old"
	svc.UpdatePractice(context.Background(), practice.UpdateInput{ID: rec.ID, Notes: practice.SetNotes(&notes)})

	p := newPracticesModel(svc, s)
	p.editingID = rec.ID
	in, _ := parsePracticeForm("2024-01-12", "60", "2000", "Backstroke", "")
	msg, ok := p.save(in)().(practiceSavedMsg)
	if !ok || msg.created || msg.record == nil {
		t.Fatalf("unexpected save result %+v", msg)
	}
	if msg.record.MainStroke != practice.Backstroke || msg.record.DurationMinutes != 60 {
		t.Fatalf("update not applied: %+v", msg.record)
	}
	if msg.record.Notes != nil {
		t.Fatal("clearing notes in the form should clear them in the store")
	}
}

func TestPracticesSaveInvalid(t *testing.T) {
	svc, s := newTestService(t)
	p := newPracticesModel(svc, s)

	msg, ok := p.save(practice.CreateInput{Date: time.Now(), DurationMinutes: 0, TotalDistance: 10})().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %+v", msg)
	}
	if !strings.HasPrefix(msg.text, "Invalid practice:") {
		t.Fatalf("unexpected text %q", msg.text)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	svc, s := newTestService(t)
	addPractice(t, svc, "2024-01-15", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-01-17", practice.Butterfly, 1500)
	addPractice(t, svc, "2024-01-08", practice.IM, 900) // previous week

	d := newDashboardModel(svc, s)
	d.now = fixedNow("2024-01-18")
	d.setSize(120, 40)
	d, _ = d.update(d.loadData()())

	if d.err != nil {
		t.Fatal(d.err)
	}
	if d.week.TotalPractices != 2 || d.week.TotalDistance != 2500 {
		t.Fatalf("unexpected week stats %+v", d.week)
	}
	if len(d.recent) != 3 {
		t.Fatalf("expected 3 recent practices, got %d", len(d.recent))
	}
	out := d.view()
	if !strings.Contains(out, "This Week") || !strings.Contains(out, "2500 m") {
		t.Fatal("dashboard should render this week's totals")
	}
}

func TestDashboardEmpty(t *testing.T) {
	svc, s := newTestService(t)
	d := newDashboardModel(svc, s)
	d.setSize(120, 40)
	d, _ = d.update(d.loadData()())

	if !strings.Contains(d.view(), "No practices yet") {
		t.Fatal("empty dashboard should say so")
	}
}

func TestDashboardTooSmall(t *testing.T) {
	svc, s := newTestService(t)
	d := newDashboardModel(svc, s)
	d.setSize(10, 10)
	if d.view() != "Terminal too small" {
		t.Fatal("expected small-terminal notice")
	}
}

// ============================================================
// Statistics view
// ============================================================

func TestStatisticsDateRange(t *testing.T) {
	svc, _ := newTestService(t)
	m := newStatisticsModel(svc)
	m.now = fixedNow("2024-03-10")

	from, to := m.dateRange()
	if practice.FormatDate(from) != "2024-03-04" || practice.FormatDate(to) != "2024-03-10" {
		t.Fatalf("week = %s..%s", practice.FormatDate(from), practice.FormatDate(to))
	}

	m.mode = rangeMonth
	m.offset = 2
	from, to = m.dateRange()
	if practice.FormatDate(from) != "2024-01-01" || practice.FormatDate(to) != "2024-01-31" {
		t.Fatalf("month = %s..%s", practice.FormatDate(from), practice.FormatDate(to))
	}

	m.offset = 3
	from, to = m.dateRange()
	if practice.FormatDate(from) != "2023-12-01" || practice.FormatDate(to) != "2023-12-31" {
		t.Fatalf("month across year = %s..%s", practice.FormatDate(from), practice.FormatDate(to))
	}

	m.mode = rangeAll
	f := m.filter()
	if f.DateFrom != nil || f.DateTo != nil {
		t.Fatal("all time should not bound dates")
	}
	if m.rangeLabel() != "All time" {
		t.Fatalf("label = %q", m.rangeLabel())
	}
}

func TestStatisticsRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	addPractice(t, svc, "2024-03-04", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-03-05", practice.Freestyle, 1200)
	addPractice(t, svc, "2024-03-06", practice.Butterfly, 800)
	addPractice(t, svc, "2024-02-01", practice.IM, 500)

	m := newStatisticsModel(svc)
	m.now = fixedNow("2024-03-10")
	m.setSize(120, 40)
	m, _ = m.update(m.refresh()())

	if m.stats.TotalPractices != 3 {
		t.Fatalf("week total = %d, want 3", m.stats.TotalPractices)
	}
	if m.stats.MostCommonStroke == nil || *m.stats.MostCommonStroke != practice.Freestyle {
		t.Fatal("most common stroke should be Freestyle")
	}
	out := m.view()
	if !strings.Contains(out, "Butterfly 1 (33%)") {
		t.Fatalf("distribution line missing from view")
	}

	m, cmd := m.update(runeKey('r'))
	if m.mode != rangeMonth || cmd == nil {
		t.Fatal("r should switch to month")
	}
	m, cmd = m.update(runeKey('r'))
	if m.mode != rangeAll {
		t.Fatal("second r should switch to all time")
	}
	m, _ = m.update(cmd())
	if m.stats.TotalPractices != 4 {
		t.Fatalf("all-time total = %d, want 4", m.stats.TotalPractices)
	}
}

func TestStatisticsNavigation(t *testing.T) {
	svc, _ := newTestService(t)
	m := newStatisticsModel(svc)

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.offset != 1 || cmd == nil {
		t.Fatal("left should go back one period")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyRight})
	if m.offset != 0 || cmd != nil {
		t.Fatal("right should stop at the current period")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{store.SettingDistanceUnit, "m", "meters"},
		{store.SettingDistanceUnit, "yd", "yards"},
		{store.SettingPageSize, "10", "10 rows"},
		{store.SettingDefaultStroke, "IM", "IM"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.value); got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
	if formatSettingLabel(store.SettingPageSize) != "Practices per page" {
		t.Fatal("missing page size label")
	}
}

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m, _ = m.showForm()
	if *m.defaultStroke != "Freestyle" || *m.distanceUnit != "m" || *m.pageSize != "10" {
		t.Fatal("form should load the stored settings")
	}

	*m.defaultStroke = "Backstroke"
	*m.distanceUnit = "yd"
	*m.pageSize = " 25 "
	if err := m.saveSettings(); err != nil {
		t.Fatal(err)
	}
	if s.DefaultStroke() != practice.Backstroke || s.DistanceUnit() != "yd" || s.PageSize() != 25 {
		t.Fatal("settings not persisted")
	}
}

func TestSettingsView(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.setSize(120, 40)
	m, _ = m.update(m.refresh()())
	out := m.view()
	if !strings.Contains(out, "Default stroke") || !strings.Contains(out, "meters") {
		t.Fatal("settings view should list labelled values")
	}
}

// ============================================================
// App
// ============================================================

func newTestApp(t *testing.T) (App, *practice.Service) {
	t.Helper()
	svc, s := newTestService(t)
	app := NewApp(svc, s)
	app.width = 120
	app.height = 40
	return app, svc
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.activeView != viewDashboard {
		t.Fatal("should start on the dashboard")
	}
	if app.Init() == nil {
		t.Fatal("Init should load the dashboard")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app, _ := newTestApp(t)
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)
	for i := range viewNames {
		app.activeView = viewState(i)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _ := newTestApp(t)

	model, cmd := app.Update(runeKey('3'))
	app = model.(App)
	if app.activeView != viewStatistics || cmd == nil {
		t.Fatal("3 should open statistics")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatal("tab should advance to settings")
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestAppFormCapturesKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app.activeView = viewPractices

	model, _ := app.Update(runeKey('n'))
	app = model.(App)
	if !app.isFormActive() {
		t.Fatal("n should open the practice form")
	}
	model, _ = app.Update(runeKey('q'))
	app = model.(App)
	if app.activeView != viewPractices || !app.isFormActive() {
		t.Fatal("keys should go to the form while it is open")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	app, _ := newTestApp(t)
	if app.renderFooter() == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	svc, s := newTestService(t)
	app := NewApp(svc, s)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(statusMsg{text: "test status"})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppPracticeSavedStatus(t *testing.T) {
	app, svc := newTestApp(t)
	rec := addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)

	model, cmd := app.Update(practiceSavedMsg{record: rec, created: true})
	app = model.(App)
	if !strings.Contains(app.status, "logged") || cmd == nil {
		t.Fatalf("unexpected status %q", app.status)
	}

	model, _ = app.Update(practiceDeletedMsg{id: rec.ID, deleted: false})
	app = model.(App)
	if !strings.Contains(app.status, "already gone") {
		t.Fatalf("unexpected status %q", app.status)
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(runeKey('x'))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}
	if !strings.Contains(app.View(), "Export Practices") {
		t.Fatal("picker not rendered")
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppDoExport(t *testing.T) {
	app, svc := newTestApp(t)
	addPractice(t, svc, "2024-01-10", practice.Freestyle, 1000)
	addPractice(t, svc, "2024-01-11", practice.IM, 1200)
	app.exportDir = t.TempDir()
	app.statistics.mode = rangeAll

	for format, ext := range []string{".csv", ".json"} {
		msg, ok := app.doExport(format)().(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: export failed", format)
		}
		if msg.count != 2 || !strings.HasSuffix(msg.path, ext) {
			t.Fatalf("unexpected result %+v", msg)
		}
		if _, err := os.Stat(msg.path); err != nil {
			t.Fatalf("export file missing: %v", err)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"statValue", func() string { return statValueStyle.Render("test") }},
		{"statLabel", func() string { return statLabelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
