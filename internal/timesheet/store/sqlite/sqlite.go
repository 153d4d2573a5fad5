// Package sqlite implements the time record store on a local
// database file, for single-machine deployments without a hosted
// Postgres instance.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS time_entries (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	person         TEXT NOT NULL,
	entry_date     TEXT NOT NULL,
	hour_type      TEXT NOT NULL,
	hours          REAL NOT NULL,
	cost_center    TEXT NOT NULL,
	comment        TEXT NOT NULL DEFAULT '',
	amount_payable INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL,
	UNIQUE (person, entry_date, hour_type, cost_center)
);
`

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file and ensures the
// schema exists. AUTOINCREMENT keeps ids monotonic across deletes.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an existing handle; the caller owns the schema.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, e *domain.TimeEntry) (int64, error) {
	now := time.Now().UTC()
	const q = `
INSERT INTO time_entries (person, entry_date, hour_type, hours, cost_center, comment, amount_payable, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	res, err := s.db.ExecContext(ctx, q,
		e.Person, e.Date.Format(dateLayout), string(e.HourType), e.Hours,
		e.CostCenter, e.Comment, e.AmountPayable,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return 0, translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, f domain.UpdateFields) error {
	const q = `
UPDATE time_entries
SET entry_date = ?, hour_type = ?, hours = ?, cost_center = ?, comment = ?, amount_payable = ?, updated_at = ?
WHERE id = ?
`
	res, err := s.db.ExecContext(ctx, q,
		f.Date.Format(dateLayout), string(f.HourType), f.Hours, f.CostCenter,
		f.Comment, f.AmountPayable, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const entryColumns = `id, person, entry_date, hour_type, hours, cost_center, comment, amount_payable, created_at, updated_at`

func (s *Store) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_entries WHERE id = ?`, entryColumns)
	e, err := scanEntry(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Store) Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_entries WHERE 1=1`, entryColumns)
	args := make([]any, 0, 3)

	if f.Person != "" {
		q += ` AND person = ?`
		args = append(args, f.Person)
	}
	if !f.Date.IsZero() {
		q += ` AND entry_date = ?`
		args = append(args, domain.NormalizeDate(f.Date).Format(dateLayout))
	}
	if f.Year != 0 && f.Month != 0 {
		q += ` AND substr(entry_date, 1, 7) = ?`
		args = append(args, fmt.Sprintf("%04d-%02d", f.Year, int(f.Month)))
	}
	q += ` ORDER BY entry_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TimeEntry, 0, 32)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.TimeEntry, error) {
	var (
		e                                domain.TimeEntry
		hourType, date, created, updated string
	)
	err := row.Scan(&e.ID, &e.Person, &date, &hourType, &e.Hours,
		&e.CostCenter, &e.Comment, &e.AmountPayable, &created, &updated)
	if err != nil {
		return nil, err
	}
	e.HourType = domain.HourType(hourType)
	if e.Date, err = time.ParseInLocation(dateLayout, date, time.UTC); err != nil {
		return nil, fmt.Errorf("parse entry_date %q: %w", date, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return &e, nil
}

func translateError(err error) error {
	// mattn/go-sqlite3 reports constraint failures by message; the
	// typed error requires cgo-only API surface we don't depend on.
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrDuplicate
	}
	return err
}
