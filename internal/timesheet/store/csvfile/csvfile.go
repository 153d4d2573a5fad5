// Package csvfile implements the time record store on a flat
// delimited file, the smallest deployment target. All access is
// serialized behind a mutex; every mutation rewrites the file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

var header = []string{
	"id", "person", "date", "hour_type", "hours",
	"cost_center", "comment", "amount_payable", "created_at", "updated_at",
}

const dateLayout = "2006-01-02"

type Store struct {
	mu     sync.Mutex
	path   string
	nextID int64
}

// Open loads the file if it exists and seeds the id counter past the
// highest id ever stored, so deleted ids are not reused.
func Open(path string) (*Store, error) {
	s := &Store{path: path, nextID: 1}

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return s, nil
}

func (s *Store) Insert(ctx context.Context, e *domain.TimeEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return 0, err
	}
	for _, x := range entries {
		if sameTuple(x, *e) {
			return 0, domain.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = now
	e.UpdatedAt = now

	entries = append(entries, *e)
	if err := s.writeAll(entries); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *Store) Update(ctx context.Context, id int64, f domain.UpdateFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries[i].Date = domain.NormalizeDate(f.Date)
		entries[i].HourType = f.HourType
		entries[i].Hours = f.Hours
		entries[i].CostCenter = f.CostCenter
		entries[i].Comment = f.Comment
		entries[i].AmountPayable = f.AmountPayable
		entries[i].UpdatedAt = time.Now().UTC()
		return s.writeAll(entries)
	}
	return domain.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return s.writeAll(entries)
		}
	}
	return domain.ErrNotFound
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			e := entries[i]
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func sameTuple(a, b domain.TimeEntry) bool {
	return a.Person == b.Person &&
		a.Date.Equal(b.Date) &&
		a.HourType == b.HourType &&
		a.CostCenter == b.CostCenter
}

func (s *Store) readAll() ([]domain.TimeEntry, error) {
	fh, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	out := make([]domain.TimeEntry, 0, len(records)-1)
	for _, rec := range records[1:] {
		e, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) writeAll(entries []domain.TimeEntry) error {
	tmp := s.path + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := csv.NewWriter(fh)
	if err := w.Write(header); err != nil {
		fh.Close()
		return err
	}
	for _, e := range entries {
		if err := w.Write(toRecord(e)); err != nil {
			fh.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return err
	}
	// Rename keeps readers from ever seeing a half-written file.
	return os.Rename(tmp, s.path)
}

func toRecord(e domain.TimeEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Person,
		e.Date.Format(dateLayout),
		string(e.HourType),
		strconv.FormatFloat(e.Hours, 'f', 1, 64),
		e.CostCenter,
		e.Comment,
		strconv.FormatInt(e.AmountPayable, 10),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fromRecord(rec []string) (domain.TimeEntry, error) {
	var e domain.TimeEntry
	if len(rec) != len(header) {
		return e, fmt.Errorf("malformed record: %d fields", len(rec))
	}

	var err error
	if e.ID, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
		return e, fmt.Errorf("parse id %q: %w", rec[0], err)
	}
	e.Person = rec[1]
	if e.Date, err = time.ParseInLocation(dateLayout, rec[2], time.UTC); err != nil {
		return e, fmt.Errorf("parse date %q: %w", rec[2], err)
	}
	e.HourType = domain.HourType(rec[3])
	if e.Hours, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return e, fmt.Errorf("parse hours %q: %w", rec[4], err)
	}
	e.CostCenter = rec[5]
	e.Comment = rec[6]
	if e.AmountPayable, err = strconv.ParseInt(rec[7], 10, 64); err != nil {
		return e, fmt.Errorf("parse amount %q: %w", rec[7], err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, rec[8]); err != nil {
		return e, fmt.Errorf("parse created_at %q: %w", rec[8], err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, rec[9]); err != nil {
		return e, fmt.Errorf("parse updated_at %q: %w", rec[9], err)
	}
	return e, nil
}
