package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

const (
	minHours = 0.5
	maxHours = 12.0
)

// validHours enforces the 0.5–12.0 range in half-hour steps.
func validHours(h float64) bool {
	if h < minHours || h > maxHours {
		return false
	}
	steps := h * 2
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

// overtimeAllowed applies the weekend-or-8-hours rule: overtime on a
// weekday needs at least 8 ordinary hours already on file for that
// exact day. Only stored entries count; entries submitted in the same
// batch are not visible to each other.
func overtimeAllowed(date time.Time, sameDay []domain.TimeEntry) bool {
	if domain.IsWeekend(date) {
		return true
	}
	var ordinary float64
	for _, e := range sameDay {
		if e.HourType == domain.HourTypeOrdinary {
			ordinary += e.Hours
		}
	}
	return ordinary >= 8
}

// findDuplicate reports an existing entry with the same
// (person, date, hour_type, cost_center) tuple, skipping excludeID
// when re-validating an edit.
func findDuplicate(e domain.TimeEntry, existing []domain.TimeEntry, excludeID int64) bool {
	for _, x := range existing {
		if x.ID == excludeID {
			continue
		}
		if x.Person == e.Person && x.Date.Equal(e.Date) &&
			x.HourType == e.HourType && x.CostCenter == e.CostCenter {
			return true
		}
	}
	return false
}

// payableAmount computes floor(hours × rate) for overtime. Ordinary
// hours and overtime without a rate on file are worth 0.
func payableAmount(hourType domain.HourType, hours float64, rate decimal.Decimal, hasRate bool) int64 {
	if hourType != domain.HourTypeOvertime || !hasRate {
		return 0
	}
	return decimal.NewFromFloat(hours).Mul(rate).Floor().IntPart()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}
