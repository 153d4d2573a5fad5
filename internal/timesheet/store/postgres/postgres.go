package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists time entries in a hosted Postgres database. The
// unique index on (person, entry_date, hour_type, cost_center)
// serializes concurrent duplicate submissions at the store level.
type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

const entryColumns = `id, person, entry_date, hour_type, hours, cost_center, comment, amount_payable, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, e *domain.TimeEntry) (int64, error) {
	const q = `
INSERT INTO time_entries (person, entry_date, hour_type, hours, cost_center, comment, amount_payable)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at;
`
	err := s.db.QueryRow(ctx, q,
		e.Person, e.Date, string(e.HourType), e.Hours, e.CostCenter, e.Comment, e.AmountPayable).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return 0, translateError(err)
	}
	return e.ID, nil
}

func (s *Store) Update(ctx context.Context, id int64, f domain.UpdateFields) error {
	const q = `
UPDATE time_entries
SET entry_date = $2, hour_type = $3, hours = $4, cost_center = $5, comment = $6, amount_payable = $7, updated_at = now()
WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q,
		id, f.Date, string(f.HourType), f.Hours, f.CostCenter, f.Comment, f.AmountPayable)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM time_entries WHERE id = $1;`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_entries WHERE id = $1;`, entryColumns)

	e, err := scanEntry(s.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

func (s *Store) Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_entries WHERE 1=1`, entryColumns)
	args := make([]any, 0, 3)

	if f.Person != "" {
		args = append(args, f.Person)
		q += fmt.Sprintf(` AND person = $%d`, len(args))
	}
	if !f.Date.IsZero() {
		args = append(args, domain.NormalizeDate(f.Date))
		q += fmt.Sprintf(` AND entry_date = $%d`, len(args))
	}
	if f.Year != 0 && f.Month != 0 {
		args = append(args, f.Year, int(f.Month))
		q += fmt.Sprintf(` AND date_part('year', entry_date) = $%d AND date_part('month', entry_date) = $%d`, len(args)-1, len(args))
	}
	q += ` ORDER BY entry_date DESC, id DESC;`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, translateError(err)
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
		return nil, translateError(err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.TimeEntry, error) {
	var (
		e        domain.TimeEntry
		hourType string
	)
	err := row.Scan(&e.ID, &e.Person, &e.Date, &hourType, &e.Hours,
		&e.CostCenter, &e.Comment, &e.AmountPayable, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.HourType = domain.HourType(hourType)
	e.Date = domain.NormalizeDate(e.Date)
	return &e, nil
}

func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrDuplicate
	}
	return err
}
