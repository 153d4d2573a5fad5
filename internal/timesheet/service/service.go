// Package service holds the timesheet business logic: admissibility
// of a proposed entry, payable amount computation, and owner-scoped
// mutation of stored entries.
package service

import (
	"context"
	"time"

	"github.com/sfarfano/registro-horas/internal/costcenters"
	"github.com/sfarfano/registro-horas/internal/payrates"
	"github.com/sfarfano/registro-horas/internal/roster"
	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
	"github.com/sfarfano/registro-horas/internal/timesheet/store"
)

// Actor identifies who is performing an operation, as resolved by
// the session middleware.
type Actor struct {
	Name  string
	Admin bool
}

type CreateRequest struct {
	Person     string
	Date       time.Time
	HourType   domain.HourType
	Hours      float64
	CostCenter string
	Comment    string
}

type UpdateRequest struct {
	Date       time.Time
	HourType   domain.HourType
	Hours      float64
	CostCenter string
	Comment    string
}

// Options toggles the behaviors the product left open.
type Options struct {
	// RevalidateOnEdit re-runs the overtime gate and the duplicate
	// check when an entry is edited, not only at creation.
	RevalidateOnEdit bool
}

type Service struct {
	store       store.Store
	roster      roster.Provider
	costCenters costcenters.Provider
	payRates    payrates.Provider
	opts        Options
}

func New(st store.Store, ros roster.Provider, cc costcenters.Provider, pr payrates.Provider, opts Options) *Service {
	return &Service{
		store:       st,
		roster:      ros,
		costCenters: cc,
		payRates:    pr,
		opts:        opts,
	}
}

// Create validates a proposed entry and persists it. The admin may
// create entries for any person; everyone else only for themselves.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateRequest) (*domain.TimeEntry, error) {
	if req.Person == "" {
		req.Person = actor.Name
	}
	if req.Person != actor.Name && !actor.Admin {
		return nil, domain.ErrForbidden
	}

	if err := s.checkInput(ctx, req.Person, req.Date, req.HourType, req.Hours, req.CostCenter); err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		Person:     req.Person,
		Date:       domain.NormalizeDate(req.Date),
		HourType:   req.HourType,
		Hours:      req.Hours,
		CostCenter: req.CostCenter,
		Comment:    req.Comment,
	}

	// Re-read current state immediately before deciding; nothing is
	// cached across calls.
	sameDay, err := s.store.Query(ctx, domain.Filter{Person: entry.Person, Date: entry.Date})
	if err != nil {
		return nil, err
	}

	if entry.HourType == domain.HourTypeOvertime && !overtimeAllowed(entry.Date, sameDay) {
		return nil, domain.ErrOvertimeNotAllowed
	}
	if findDuplicate(entry, sameDay, 0) {
		return nil, domain.ErrDuplicate
	}

	amount, err := s.amountFor(ctx, entry.Person, entry.HourType, entry.Hours)
	if err != nil {
		return nil, err
	}
	entry.AmountPayable = amount

	if _, err := s.store.Insert(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update edits an entry's mutable fields. Identity (id, person) is
// preserved and the payable amount is always recomputed; the
// admissibility checks re-run only when RevalidateOnEdit is set.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req UpdateRequest) (*domain.TimeEntry, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Person != actor.Name && !actor.Admin {
		return nil, domain.ErrForbidden
	}

	if err := s.checkInput(ctx, current.Person, req.Date, req.HourType, req.Hours, req.CostCenter); err != nil {
		return nil, err
	}

	fields := domain.UpdateFields{
		Date:       domain.NormalizeDate(req.Date),
		HourType:   req.HourType,
		Hours:      req.Hours,
		CostCenter: req.CostCenter,
		Comment:    req.Comment,
	}

	if s.opts.RevalidateOnEdit {
		sameDay, err := s.store.Query(ctx, domain.Filter{Person: current.Person, Date: fields.Date})
		if err != nil {
			return nil, err
		}
		if fields.HourType == domain.HourTypeOvertime && !overtimeAllowed(fields.Date, withoutID(sameDay, id)) {
			return nil, domain.ErrOvertimeNotAllowed
		}
		proposed := domain.TimeEntry{
			Person:     current.Person,
			Date:       fields.Date,
			HourType:   fields.HourType,
			CostCenter: fields.CostCenter,
		}
		if findDuplicate(proposed, sameDay, id) {
			return nil, domain.ErrDuplicate
		}
	}

	amount, err := s.amountFor(ctx, current.Person, fields.HourType, fields.Hours)
	if err != nil {
		return nil, err
	}
	fields.AmountPayable = amount

	if err := s.store.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// Delete removes an entry. Owners delete their own; the admin any.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Person != actor.Name && !actor.Admin {
		return domain.ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// List returns entries visible to the actor. Non-admins are always
// scoped to their own entries regardless of the requested filter.
func (s *Service) List(ctx context.Context, actor Actor, f domain.Filter) ([]domain.TimeEntry, error) {
	if !actor.Admin {
		f.Person = actor.Name
	}
	return s.store.Query(ctx, f)
}

func (s *Service) checkInput(ctx context.Context, person string, date time.Time, hourType domain.HourType, hours float64, costCenter string) error {
	if person == "" {
		return invalid("person is required")
	}
	if date.IsZero() {
		return invalid("date is required")
	}
	if !hourType.Valid() {
		return invalid("hour_type must be %q or %q", domain.HourTypeOrdinary, domain.HourTypeOvertime)
	}
	if !validHours(hours) {
		return invalid("hours must be between %.1f and %.1f in steps of 0.5", minHours, maxHours)
	}
	if costCenter == "" {
		return invalid("cost_center is required")
	}

	people, err := s.roster.Roster(ctx)
	if err != nil {
		return err
	}
	if _, ok := roster.Find(people, person); !ok {
		return invalid("person %q is not on the roster", person)
	}

	active, err := s.costCenters.Active(ctx)
	if err != nil {
		return err
	}
	if !costcenters.Contains(active, costCenter) {
		return invalid("cost center %q is not active", costCenter)
	}
	return nil
}

func (s *Service) amountFor(ctx context.Context, person string, hourType domain.HourType, hours float64) (int64, error) {
	if hourType != domain.HourTypeOvertime {
		return 0, nil
	}
	rate, ok, err := s.payRates.OvertimeRate(ctx, person)
	if err != nil {
		return 0, err
	}
	// Missing rate is not an error; the entry is accepted at 0 and
	// flagged in the report validation view.
	return payableAmount(hourType, hours, rate, ok), nil
}

func withoutID(entries []domain.TimeEntry, id int64) []domain.TimeEntry {
	out := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
