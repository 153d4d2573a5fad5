package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	in := time.Date(2026, time.March, 3, 17, 45, 12, 999, time.UTC)
	got := NormalizeDate(in)
	assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)))  // saturday
	assert.True(t, IsWeekend(time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)))  // sunday
	assert.False(t, IsWeekend(time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC))) // friday
}

func TestHourTypeValid(t *testing.T) {
	assert.True(t, HourTypeOrdinary.Valid())
	assert.True(t, HourTypeOvertime.Valid())
	assert.False(t, HourType("double").Valid())
	assert.False(t, HourType("").Valid())
}

func TestFilterMatches(t *testing.T) {
	e := TimeEntry{
		Person: "Ana Rojas",
		Date:   time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, Filter{}.Matches(e), "zero filter matches everything")
	assert.True(t, Filter{Person: "Ana Rojas"}.Matches(e))
	assert.False(t, Filter{Person: "Pedro Soto"}.Matches(e))

	assert.True(t, Filter{Date: time.Date(2026, time.March, 3, 23, 0, 0, 0, time.UTC)}.Matches(e),
		"day filter ignores time of day")
	assert.False(t, Filter{Date: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)}.Matches(e))

	assert.True(t, Filter{Year: 2026, Month: time.March}.Matches(e))
	assert.False(t, Filter{Year: 2026, Month: time.April}.Matches(e))
	assert.True(t, Filter{Year: 2026}.Matches(e), "month filter needs both year and month")
}
