// Package memory implements the time record store in process memory.
// It backs unit tests and demo runs; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

type Store struct {
	mu      sync.Mutex
	entries map[int64]domain.TimeEntry
	nextID  int64
}

func New() *Store {
	return &Store{entries: make(map[int64]domain.TimeEntry), nextID: 1}
}

func (s *Store) Insert(ctx context.Context, e *domain.TimeEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, x := range s.entries {
		if x.Person == e.Person && x.Date.Equal(e.Date) &&
			x.HourType == e.HourType && x.CostCenter == e.CostCenter {
			return 0, domain.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = now
	e.UpdatedAt = now
	s.entries[e.ID] = *e
	return e.ID, nil
}

func (s *Store) Update(ctx context.Context, id int64, f domain.UpdateFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Date = domain.NormalizeDate(f.Date)
	e.HourType = f.HourType
	e.Hours = f.Hours
	e.CostCenter = f.CostCenter
	e.Comment = f.Comment
	e.AmountPayable = f.AmountPayable
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (s *Store) Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
