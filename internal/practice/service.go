package practice

import (
	"context"
	"log/slog"
)

// Service validates requests and delegates them to a Repository. Store
// failures are logged here once and returned unchanged.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service. A nil logger uses slog.Default().
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreatePractice stores a new practice. Retrying a failed create may insert
// a duplicate.
func (s *Service) CreatePractice(ctx context.Context, in CreateInput) (*Record, error) {
	in.Date = Day(in.Date)
	in.Notes = NormalizeNotes(in.Notes)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("create practice failed", "error", err)
		return nil, err
	}
	s.logger.Debug("practice created", "id", rec.ID, "date", FormatDate(rec.Date), "stroke", rec.MainStroke.String())
	return rec, nil
}

// GetPractice returns the practice or nil when it does not exist.
func (s *Service) GetPractice(ctx context.Context, id int64) (*Record, error) {
	if id <= 0 {
		return nil, nil
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Error("get practice failed", "id", id, "error", err)
		return nil, err
	}
	return rec, nil
}

// ListPractices returns one page of matching practices, most recent date
// first.
func (s *Service) ListPractices(ctx context.Context, f ListFilter) ([]Record, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f = normalizeListFilter(f)
	records, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("list practices failed", "error", err)
		return nil, err
	}
	return records, nil
}

// UpdatePractice applies a partial update and returns the stored result, or
// nil when the id does not exist.
func (s *Service) UpdatePractice(ctx context.Context, in UpdateInput) (*Record, error) {
	if in.Date != nil {
		d := Day(*in.Date)
		in.Date = &d
	}
	if in.Notes.Set {
		in.Notes.Value = NormalizeNotes(in.Notes.Value)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.ID <= 0 {
		return nil, nil
	}
	rec, err := s.repo.Update(ctx, in)
	if err != nil {
		s.logger.Error("update practice failed", "id", in.ID, "error", err)
		return nil, err
	}
	return rec, nil
}

// DeletePractice removes a practice and reports whether one existed.
func (s *Service) DeletePractice(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete practice failed", "id", id, "error", err)
		return false, err
	}
	return deleted, nil
}

// Statistics aggregates every practice in the date range.
func (s *Service) Statistics(ctx context.Context, f RangeFilter) (Statistics, error) {
	records, err := s.PracticesInRange(ctx, f)
	if err != nil {
		return Statistics{}, err
	}
	return Aggregate(records), nil
}

// PracticesInRange returns the full, unpaged set of practices in the date
// range, most recent first.
func (s *Service) PracticesInRange(ctx context.Context, f RangeFilter) ([]Record, error) {
	f = normalizeRange(f)
	records, err := s.repo.ListRange(ctx, f)
	if err != nil {
		s.logger.Error("list practice range failed", "error", err)
		return nil, err
	}
	return records, nil
}

func normalizeListFilter(f ListFilter) ListFilter {
	r := normalizeRange(f.Range())
	f.DateFrom, f.DateTo = r.DateFrom, r.DateTo
	limit, offset := f.PageLimit(), f.PageOffset()
	f.Limit, f.Offset = &limit, &offset
	return f
}

func normalizeRange(f RangeFilter) RangeFilter {
	if f.DateFrom != nil {
		d := Day(*f.DateFrom)
		f.DateFrom = &d
	}
	if f.DateTo != nil {
		d := Day(*f.DateTo)
		f.DateTo = &d
	}
	return f
}
