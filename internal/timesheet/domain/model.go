package domain

import (
	"errors"
	"time"
)

// HourType distinguishes standard-rate hours from payable overtime.
type HourType string

const (
	HourTypeOrdinary HourType = "ordinary"
	HourTypeOvertime HourType = "overtime"
)

func (t HourType) Valid() bool {
	return t == HourTypeOrdinary || t == HourTypeOvertime
}

// TimeEntry is one unit of worked time claimed by one person on one
// day against one cost center. Date carries no time-of-day component.
type TimeEntry struct {
	ID            int64     `json:"id"`
	Person        string    `json:"person"`
	Date          time.Time `json:"date"`
	HourType      HourType  `json:"hour_type"`
	Hours         float64   `json:"hours"`
	CostCenter    string    `json:"cost_center"`
	Comment       string    `json:"comment,omitempty"`
	AmountPayable int64     `json:"amount_payable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateFields carries the mutable fields of an entry. Identity
// fields (id, person) never change on edit.
type UpdateFields struct {
	Date          time.Time `json:"date"`
	HourType      HourType  `json:"hour_type"`
	Hours         float64   `json:"hours"`
	CostCenter    string    `json:"cost_center"`
	Comment       string    `json:"comment"`
	AmountPayable int64     `json:"-"`
}

// Filter restricts a store query. The zero value returns everything.
type Filter struct {
	Person string
	// Date filters to one calendar day when non-zero.
	Date time.Time
	// Year/Month filter to one calendar month when both set.
	Year  int
	Month time.Month
}

// Matches reports whether an entry passes the filter. Store adapters
// that cannot push the filter down (csv) evaluate it in memory.
func (f Filter) Matches(e TimeEntry) bool {
	if f.Person != "" && e.Person != f.Person {
		return false
	}
	if !f.Date.IsZero() {
		y1, m1, d1 := f.Date.Date()
		y2, m2, d2 := e.Date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.Year != 0 && f.Month != 0 {
		if e.Date.Year() != f.Year || e.Date.Month() != f.Month {
			return false
		}
	}
	return true
}

// NormalizeDate drops the time-of-day component; all date comparisons
// are by calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrOvertimeNotAllowed = errors.New("overtime not permitted for this day")
	ErrDuplicate          = errors.New("duplicate entry")
	ErrNotFound           = errors.New("entry not found")
	ErrForbidden          = errors.New("not the owner of this entry")
	ErrUnavailable        = errors.New("time record store unavailable")
)
