// Package postgres provides PostgreSQL-backed persistence for practices,
// used when the server runs against a shared database instead of the
// embedded SQLite file.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadopc/swimlog/internal/practice"
)

const practiceColumns = `id, date, duration_minutes, total_distance, main_stroke, notes, created_at`

const schema = `CREATE TABLE IF NOT EXISTS swimming_practices (
    id               BIGSERIAL PRIMARY KEY,
    date             DATE NOT NULL,
    duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
    total_distance   DOUBLE PRECISION NOT NULL CHECK (total_distance > 0),
    main_stroke      TEXT NOT NULL CHECK (main_stroke IN ('Freestyle', 'Breaststroke', 'Backstroke', 'Butterfly', 'IM')),
    notes            TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_practices_date ON swimming_practices (date DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_practices_stroke ON swimming_practices (main_stroke);`

// Repository implements practice.Repository on a pgx connection pool.
type Repository struct {
	pool *pgxpool.Pool
}

var _ practice.Repository = (*Repository)(nil)

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Open connects to url, verifies the connection and creates the schema.
func Open(ctx context.Context, url string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	r := NewRepository(pool)
	if err := r.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// Migrate creates the practices table and its indexes if missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Create(ctx context.Context, in practice.CreateInput) (*practice.Record, error) {
	const stmt = `INSERT INTO swimming_practices (date, duration_minutes, total_distance, main_stroke, notes)
        VALUES ($1,$2,$3,$4,$5) RETURNING ` + practiceColumns

	row := r.pool.QueryRow(ctx, stmt, in.Date, in.DurationMinutes, in.TotalDistance, in.MainStroke.String(), in.Notes)
	rec, err := scanPractice(row)
	if err != nil {
		return nil, fmt.Errorf("insert practice: %w", err)
	}
	return rec, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*practice.Record, error) {
	const query = `SELECT ` + practiceColumns + ` FROM swimming_practices WHERE id=$1`

	rec, err := scanPractice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get practice %d: %w", id, err)
	}
	return rec, nil
}

func (r *Repository) List(ctx context.Context, f practice.ListFilter) ([]practice.Record, error) {
	query, args := buildListQuery(f)
	return r.query(ctx, "list practices", query, args)
}

func (r *Repository) ListRange(ctx context.Context, f practice.RangeFilter) ([]practice.Record, error) {
	query, args := buildRangeQuery(f)
	return r.query(ctx, "list practice range", query, args)
}

func (r *Repository) Update(ctx context.Context, in practice.UpdateInput) (*practice.Record, error) {
	if in.Empty() {
		return r.Get(ctx, in.ID)
	}

	stmt, args := buildUpdate(in)
	rec, err := scanPractice(r.pool.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update practice %d: %w", in.ID, err)
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM swimming_practices WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete practice %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []any) ([]practice.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []practice.Record
	for rows.Next() {
		rec, err := scanPractice(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		results = append(results, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

func scanPractice(row pgx.Row) (*practice.Record, error) {
	var (
		rec    practice.Record
		stroke string
		date   time.Time
	)
	if err := row.Scan(&rec.ID, &date, &rec.DurationMinutes, &rec.TotalDistance, &stroke, &rec.Notes, &rec.CreatedAt); err != nil {
		return nil, err
	}
	s, err := practice.ParseStroke(stroke)
	if err != nil {
		return nil, fmt.Errorf("practice %d: %w", rec.ID, err)
	}
	rec.MainStroke = s
	rec.Date = practice.Day(date)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// args numbers positional parameters as they are appended.
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func rangeWhere(f practice.RangeFilter, a *args) []string {
	var where []string
	if f.DateFrom != nil {
		where = append(where, "date >= "+a.add(*f.DateFrom))
	}
	if f.DateTo != nil {
		where = append(where, "date <= "+a.add(*f.DateTo))
	}
	return where
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func buildListQuery(f practice.ListFilter) (string, []any) {
	var a args
	where := rangeWhere(f.Range(), &a)
	if f.StrokeType != nil {
		where = append(where, "main_stroke = "+a.add(f.StrokeType.String()))
	}
	query := `SELECT ` + practiceColumns + ` FROM swimming_practices` + whereClause(where) +
		` ORDER BY date DESC, id DESC`
	query += " LIMIT " + a.add(f.PageLimit())
	query += " OFFSET " + a.add(f.PageOffset())
	return query, a
}

func buildRangeQuery(f practice.RangeFilter) (string, []any) {
	var a args
	where := rangeWhere(f, &a)
	return `SELECT ` + practiceColumns + ` FROM swimming_practices` + whereClause(where) +
		` ORDER BY date DESC, id DESC`, a
}

func buildUpdate(in practice.UpdateInput) (string, []any) {
	var a args
	var sets []string
	if in.Date != nil {
		sets = append(sets, "date="+a.add(*in.Date))
	}
	if in.DurationMinutes != nil {
		sets = append(sets, "duration_minutes="+a.add(*in.DurationMinutes))
	}
	if in.TotalDistance != nil {
		sets = append(sets, "total_distance="+a.add(*in.TotalDistance))
	}
	if in.MainStroke != nil {
		sets = append(sets, "main_stroke="+a.add(in.MainStroke.String()))
	}
	if in.Notes.Set {
		sets = append(sets, "notes="+a.add(in.Notes.Value))
	}
	stmt := `UPDATE swimming_practices SET ` + strings.Join(sets, ", ") +
		` WHERE id=` + a.add(in.ID) + ` RETURNING ` + practiceColumns
	return stmt, a
}
