package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/swimlog/internal/practice"
)

const practiceColumns = `id, date, duration_minutes, total_distance, main_stroke, notes, created_at`

// Store implements practice.Repository.
var _ practice.Repository = (*Store)(nil)

func (s *Store) Create(ctx context.Context, in practice.CreateInput) (*practice.Record, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO swimming_practices (date, duration_minutes, total_distance, main_stroke, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		practice.FormatDate(in.Date), in.DurationMinutes, in.TotalDistance, in.MainStroke.String(), nullString(in.Notes), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert practice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert practice: %w", err)
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("insert practice: row %d vanished", id)
	}
	return rec, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*practice.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+practiceColumns+` FROM swimming_practices WHERE id = ?`, id,
	)
	rec, err := scanPractice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get practice %d: %w", id, err)
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context, f practice.ListFilter) ([]practice.Record, error) {
	where, args := rangeClause(f.Range())
	if f.StrokeType != nil {
		where = append(where, `main_stroke = ?`)
		args = append(args, f.StrokeType.String())
	}

	query := `SELECT ` + practiceColumns + ` FROM swimming_practices` + joinWhere(where) +
		` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, f.PageLimit(), f.PageOffset())

	return s.queryPractices(ctx, "list practices", query, args...)
}

func (s *Store) ListRange(ctx context.Context, f practice.RangeFilter) ([]practice.Record, error) {
	where, args := rangeClause(f)
	query := `SELECT ` + practiceColumns + ` FROM swimming_practices` + joinWhere(where) +
		` ORDER BY date DESC, id DESC`
	return s.queryPractices(ctx, "list practice range", query, args...)
}

func (s *Store) Update(ctx context.Context, in practice.UpdateInput) (*practice.Record, error) {
	if in.Empty() {
		return s.Get(ctx, in.ID)
	}

	var sets []string
	var args []any
	if in.Date != nil {
		sets = append(sets, `date = ?`)
		args = append(args, practice.FormatDate(*in.Date))
	}
	if in.DurationMinutes != nil {
		sets = append(sets, `duration_minutes = ?`)
		args = append(args, *in.DurationMinutes)
	}
	if in.TotalDistance != nil {
		sets = append(sets, `total_distance = ?`)
		args = append(args, *in.TotalDistance)
	}
	if in.MainStroke != nil {
		sets = append(sets, `main_stroke = ?`)
		args = append(args, in.MainStroke.String())
	}
	if in.Notes.Set {
		sets = append(sets, `notes = ?`)
		args = append(args, nullString(in.Notes.Value))
	}
	args = append(args, in.ID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE swimming_practices SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update practice %d: %w", in.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update practice %d: %w", in.ID, err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.Get(ctx, in.ID)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM swimming_practices WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete practice %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete practice %d: %w", id, err)
	}
	return n > 0, nil
}

func (s *Store) queryPractices(ctx context.Context, op, query string, args ...any) ([]practice.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []practice.Record
	for rows.Next() {
		rec, err := scanPractice(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPractice(sc rowScanner) (*practice.Record, error) {
	var r practiceRow
	var notes sql.NullString
	if err := sc.Scan(&r.id, &r.date, &r.duration, &r.distance, &r.stroke, &notes, &r.createdAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		r.notes = &notes.String
	}
	return r.record()
}

func (r practiceRow) record() (*practice.Record, error) {
	date, err := time.Parse(practice.DateLayout, r.date)
	if err != nil {
		return nil, fmt.Errorf("practice %d: bad date %q: %w", r.id, r.date, err)
	}
	stroke, err := practice.ParseStroke(r.stroke)
	if err != nil {
		return nil, fmt.Errorf("practice %d: %w", r.id, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.createdAt)
	if err != nil {
		return nil, fmt.Errorf("practice %d: bad created_at %q: %w", r.id, r.createdAt, err)
	}
	return &practice.Record{
		ID:              r.id,
		Date:            date,
		DurationMinutes: r.duration,
		TotalDistance:   r.distance,
		MainStroke:      stroke,
		Notes:           r.notes,
		CreatedAt:       createdAt,
	}, nil
}

func rangeClause(f practice.RangeFilter) ([]string, []any) {
	var where []string
	var args []any
	if f.DateFrom != nil {
		where = append(where, `date >= ?`)
		args = append(args, practice.FormatDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		where = append(where, `date <= ?`)
		args = append(args, practice.FormatDate(*f.DateTo))
	}
	return where, args
}

func joinWhere(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return ` WHERE ` + strings.Join(where, ` AND `)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
