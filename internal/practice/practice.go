// Package practice holds the swimming practice domain: records, the filter
// contract shared by listing and statistics, the statistics aggregator, and
// the Service the transports call.
package practice

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a practice date.
const DateLayout = "2006-01-02"

// DefaultLimit is the page size applied when a list filter has no limit.
const DefaultLimit = 50

// Record is one logged swimming session.
type Record struct {
	ID              int64
	Date            time.Time // calendar day, 00:00 UTC
	DurationMinutes int
	TotalDistance   float64
	MainStroke      Stroke
	Notes           *string
	CreatedAt       time.Time
}

// CreateInput carries the fields of a new record.
type CreateInput struct {
	Date            time.Time
	DurationMinutes int
	TotalDistance   float64
	MainStroke      Stroke
	Notes           *string
}

// UpdateInput is a partial update. Nil fields keep their stored value.
type UpdateInput struct {
	ID              int64
	Date            *time.Time
	DurationMinutes *int
	TotalDistance   *float64
	MainStroke      *Stroke
	Notes           NotesPatch
}

// Empty reports whether the update changes nothing.
func (u UpdateInput) Empty() bool {
	return u.Date == nil && u.DurationMinutes == nil && u.TotalDistance == nil &&
		u.MainStroke == nil && !u.Notes.Set
}

// NotesPatch distinguishes an omitted notes field from an explicit null.
// Set with a nil Value clears the notes.
type NotesPatch struct {
	Set   bool
	Value *string
}

// SetNotes returns a patch that assigns value; nil clears.
func SetNotes(value *string) NotesPatch {
	return NotesPatch{Set: true, Value: value}
}

func (p *NotesPatch) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		p.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.Value = &s
	return nil
}

// ListFilter narrows and pages the practice listing. All fields are optional
// and combine with AND; date bounds are inclusive.
type ListFilter struct {
	StrokeType *Stroke
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      *int
	Offset     *int
}

// PageLimit returns the effective limit.
func (f ListFilter) PageLimit() int {
	if f.Limit == nil {
		return DefaultLimit
	}
	return *f.Limit
}

// PageOffset returns the effective offset.
func (f ListFilter) PageOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// Range returns the date part of the filter.
func (f ListFilter) Range() RangeFilter {
	return RangeFilter{DateFrom: f.DateFrom, DateTo: f.DateTo}
}

// RangeFilter selects the full set of practices between two inclusive dates.
// Statistics and export use it; it never pages.
type RangeFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// Repository is the record store contract. Get and Update return a nil
// record, and Delete returns false, when the id does not exist.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	List(ctx context.Context, f ListFilter) ([]Record, error)
	ListRange(ctx context.Context, f RangeFilter) ([]Record, error)
	Update(ctx context.Context, in UpdateInput) (*Record, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "expected YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

// Day truncates t to its calendar day at 00:00 UTC, keeping the wall-clock
// date of t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeNotes maps blank notes to nil so absence has a single encoding.
func NormalizeNotes(notes *string) *string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return nil
	}
	n := *notes
	return &n
}

func validDuration(minutes int) *ValidationError {
	if minutes <= 0 {
		return invalid("duration_minutes", "must be a positive integer, got %d", minutes)
	}
	return nil
}

func validDistance(distance float64) *ValidationError {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
		return invalid("total_distance", "must be a positive number, got %v", distance)
	}
	return nil
}

func validStroke(s Stroke) *ValidationError {
	if !s.Valid() {
		return invalid("main_stroke", "must be one of %s", strings.Join(StrokeNames(), ", "))
	}
	return nil
}

func validDate(t time.Time) *ValidationError {
	if t.IsZero() {
		return invalid("date", "is required")
	}
	return nil
}

// Validate checks a create input against the record invariants.
func (in CreateInput) Validate() error {
	if err := validDate(in.Date); err != nil {
		return err
	}
	if err := validDuration(in.DurationMinutes); err != nil {
		return err
	}
	if err := validDistance(in.TotalDistance); err != nil {
		return err
	}
	if err := validStroke(in.MainStroke); err != nil {
		return err
	}
	return nil
}

// Validate checks the fields present in the update.
func (u UpdateInput) Validate() error {
	if u.Date != nil {
		if err := validDate(*u.Date); err != nil {
			return err
		}
	}
	if u.DurationMinutes != nil {
		if err := validDuration(*u.DurationMinutes); err != nil {
			return err
		}
	}
	if u.TotalDistance != nil {
		if err := validDistance(*u.TotalDistance); err != nil {
			return err
		}
	}
	if u.MainStroke != nil {
		if err := validStroke(*u.MainStroke); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the pagination bounds of a list filter.
func (f ListFilter) Validate() error {
	if f.Limit != nil && *f.Limit <= 0 {
		return invalid("limit", "must be a positive integer, got %d", *f.Limit)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return invalid("offset", "must be non-negative, got %d", *f.Offset)
	}
	if f.StrokeType != nil {
		if err := validStroke(*f.StrokeType); err != nil {
			err.Field = "stroke_type"
			return err
		}
	}
	return nil
}
