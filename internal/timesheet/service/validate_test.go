package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

func TestValidHours(t *testing.T) {
	valid := []float64{0.5, 1, 1.5, 8, 11.5, 12}
	for _, h := range valid {
		assert.True(t, validHours(h), "hours %v should be valid", h)
	}

	invalid := []float64{0, 0.4, 0.25, 12.5, 13, -1, 7.3}
	for _, h := range invalid {
		assert.False(t, validHours(h), "hours %v should be invalid", h)
	}
}

func TestOvertimeAllowed_Weekday(t *testing.T) {
	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	t.Run("no ordinary hours on file", func(t *testing.T) {
		assert.False(t, overtimeAllowed(tuesday, nil))
	})

	t.Run("under eight ordinary hours", func(t *testing.T) {
		sameDay := []domain.TimeEntry{
			{HourType: domain.HourTypeOrdinary, Hours: 4, Date: tuesday},
			{HourType: domain.HourTypeOrdinary, Hours: 3.5, Date: tuesday},
		}
		assert.False(t, overtimeAllowed(tuesday, sameDay))
	})

	t.Run("eight ordinary hours on file", func(t *testing.T) {
		sameDay := []domain.TimeEntry{
			{HourType: domain.HourTypeOrdinary, Hours: 8, Date: tuesday},
		}
		assert.True(t, overtimeAllowed(tuesday, sameDay))
	})

	t.Run("overtime hours do not count toward the gate", func(t *testing.T) {
		sameDay := []domain.TimeEntry{
			{HourType: domain.HourTypeOvertime, Hours: 9, Date: tuesday},
		}
		assert.False(t, overtimeAllowed(tuesday, sameDay))
	})
}

func TestOvertimeAllowed_Weekend(t *testing.T) {
	saturday := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, overtimeAllowed(saturday, nil))
	assert.True(t, overtimeAllowed(sunday, nil))
}

func TestFindDuplicate(t *testing.T) {
	date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	proposed := domain.TimeEntry{
		Person:     "Ana Rojas",
		Date:       date,
		HourType:   domain.HourTypeOrdinary,
		CostCenter: "CC-100",
	}

	existing := []domain.TimeEntry{
		{ID: 7, Person: "Ana Rojas", Date: date, HourType: domain.HourTypeOrdinary, CostCenter: "CC-100"},
	}

	assert.True(t, findDuplicate(proposed, existing, 0))
	assert.False(t, findDuplicate(proposed, existing, 7), "the entry being edited is not its own duplicate")

	other := proposed
	other.CostCenter = "CC-200"
	assert.False(t, findDuplicate(other, existing, 0))

	overtime := proposed
	overtime.HourType = domain.HourTypeOvertime
	assert.False(t, findDuplicate(overtime, existing, 0))
}

func TestPayableAmount(t *testing.T) {
	rate := decimal.NewFromInt(4500)

	assert.Equal(t, int64(13500), payableAmount(domain.HourTypeOvertime, 3, rate, true))
	assert.Equal(t, int64(0), payableAmount(domain.HourTypeOrdinary, 8, rate, true))
	assert.Equal(t, int64(0), payableAmount(domain.HourTypeOvertime, 3, decimal.Zero, false))

	// floor, not round
	assert.Equal(t, int64(2250), payableAmount(domain.HourTypeOvertime, 0.5, rate, true))
	halfRate := decimal.RequireFromString("100.5")
	assert.Equal(t, int64(50), payableAmount(domain.HourTypeOvertime, 0.5, halfRate, true))
}
