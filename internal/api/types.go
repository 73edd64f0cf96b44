package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/sadopc/swimlog/internal/practice"
)

// CreatePracticeRequest is the body of createPractice.
type CreatePracticeRequest struct {
	Date            string  `json:"date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	TotalDistance   float64 `json:"total_distance" binding:"required,gt=0"`
	MainStroke      string  `json:"main_stroke" binding:"required,stroke"`
	Notes           *string `json:"notes"`
}

func (r CreatePracticeRequest) toInput() (practice.CreateInput, error) {
	date, err := practice.ParseDate(r.Date)
	if err != nil {
		return practice.CreateInput{}, err
	}
	stroke, err := practice.ParseStroke(r.MainStroke)
	if err != nil {
		return practice.CreateInput{}, err
	}
	return practice.CreateInput{
		Date:            date,
		DurationMinutes: r.DurationMinutes,
		TotalDistance:   r.TotalDistance,
		MainStroke:      stroke,
		Notes:           r.Notes,
	}, nil
}

// UpdatePracticeRequest is the body of updatePractice. Omitted fields are
// left unchanged; "notes": null clears the notes.
type UpdatePracticeRequest struct {
	ID              RecordID            `json:"id"`
	Date            *string             `json:"date" binding:"omitempty,datetime=2006-01-02"`
	DurationMinutes *int                `json:"duration_minutes" binding:"omitempty,gt=0"`
	TotalDistance   *float64            `json:"total_distance" binding:"omitempty,gt=0"`
	MainStroke      *string             `json:"main_stroke" binding:"omitempty,stroke"`
	Notes           practice.NotesPatch `json:"notes"`
}

func (r UpdatePracticeRequest) toInput() (practice.UpdateInput, error) {
	in := practice.UpdateInput{
		ID:              r.ID.Value,
		DurationMinutes: r.DurationMinutes,
		TotalDistance:   r.TotalDistance,
		Notes:           r.Notes,
	}
	if r.Date != nil {
		d, err := practice.ParseDate(*r.Date)
		if err != nil {
			return in, err
		}
		in.Date = &d
	}
	if r.MainStroke != nil {
		s, err := practice.ParseStroke(*r.MainStroke)
		if err != nil {
			return in, err
		}
		in.MainStroke = &s
	}
	return in, nil
}

// IDRequest is the body of deletePractice.
type IDRequest struct {
	ID RecordID `json:"id"`
}

// RecordID is a practice id read from a request. A well-formed integer
// outside the int64 range names no stored practice; it is kept as
// OutOfRange so the procedure answers "not found" instead of failing.
type RecordID struct {
	Value      int64
	OutOfRange bool
}

var errIDNotInteger = &practice.ValidationError{Field: "id", Message: "must be an integer"}

func parseRecordID(s string) (RecordID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err == nil:
		return RecordID{Value: v}, nil
	case errors.Is(err, strconv.ErrRange):
		return RecordID{OutOfRange: true}, nil
	}
	return RecordID{}, errIDNotInteger
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = RecordID{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errIDNotInteger
	}
	parsed, err := parseRecordID(n.String())
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ListPracticesQuery holds the listPractices query parameters.
type ListPracticesQuery struct {
	StrokeType string `form:"stroke_type" binding:"omitempty,stroke"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit      *int   `form:"limit"`
	Offset     *int   `form:"offset"`
}

func (q ListPracticesQuery) toFilter() (practice.ListFilter, error) {
	rng, err := parseRange(q.DateFrom, q.DateTo)
	if err != nil {
		return practice.ListFilter{}, err
	}
	f := practice.ListFilter{
		DateFrom: rng.DateFrom,
		DateTo:   rng.DateTo,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.StrokeType != "" {
		s, err := practice.ParseStroke(q.StrokeType)
		if err != nil {
			return f, withField(err, "stroke_type")
		}
		f.StrokeType = &s
	}
	return f, nil
}

// StatisticsQuery holds the getStatistics query parameters.
type StatisticsQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

func parseRange(from, to string) (practice.RangeFilter, error) {
	var f practice.RangeFilter
	if from != "" {
		d, err := practice.ParseDate(from)
		if err != nil {
			return f, withField(err, "date_from")
		}
		f.DateFrom = &d
	}
	if to != "" {
		d, err := practice.ParseDate(to)
		if err != nil {
			return f, withField(err, "date_to")
		}
		f.DateTo = &d
	}
	return f, nil
}

// withField re-labels a validation error with the query parameter name.
func withField(err error, field string) error {
	var verr *practice.ValidationError
	if errors.As(err, &verr) {
		return &practice.ValidationError{Field: field, Message: verr.Message}
	}
	return err
}

// PracticeView is the wire shape of a practice.
type PracticeView struct {
	ID              int64           `json:"id"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalDistance   float64         `json:"total_distance"`
	MainStroke      practice.Stroke `json:"main_stroke"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toPracticeView(rec *practice.Record) *PracticeView {
	if rec == nil {
		return nil
	}
	return &PracticeView{
		ID:              rec.ID,
		Date:            practice.FormatDate(rec.Date),
		DurationMinutes: rec.DurationMinutes,
		TotalDistance:   rec.TotalDistance,
		MainStroke:      rec.MainStroke,
		Notes:           rec.Notes,
		CreatedAt:       rec.CreatedAt,
	}
}

func toPracticeViews(records []practice.Record) []PracticeView {
	views := make([]PracticeView, 0, len(records))
	for i := range records {
		views = append(views, *toPracticeView(&records[i]))
	}
	return views
}

// DeleteResponse reports whether deletePractice removed a row.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// HealthResponse is the healthcheck payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}
