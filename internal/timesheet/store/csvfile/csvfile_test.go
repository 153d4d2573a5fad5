package csvfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

func entry(person string, day int, ht domain.HourType, cc string) *domain.TimeEntry {
	return &domain.TimeEntry{
		Person:     person,
		Date:       time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
		HourType:   ht,
		Hours:      8,
		CostCenter: cc,
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.csv")
	st, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()

	e := entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100")
	e.Comment = "turno mañana"
	e.AmountPayable = 0

	id, err := st.Insert(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Rojas", got.Person)
	assert.Equal(t, "turno mañana", got.Comment)
	assert.True(t, got.Date.Equal(e.Date))

	// A fresh handle over the same file sees the entry.
	st2, err := Open(path)
	require.NoError(t, err)
	rows, err := st2.Query(ctx, domain.Filter{Person: "Ana Rojas"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestInsert_Duplicate(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "horas.csv"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)

	_, err = st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Same tuple except cost center is a distinct entry.
	_, err = st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-200"))
	assert.NoError(t, err)
}

func TestUpdateAndDelete(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "horas.csv"))
	require.NoError(t, err)
	ctx := context.Background()

	id, err := st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)

	err = st.Update(ctx, id, domain.UpdateFields{
		Date:          time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		HourType:      domain.HourTypeOrdinary,
		Hours:         6.5,
		CostCenter:    "CC-200",
		AmountPayable: 0,
	})
	require.NoError(t, err)

	got, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6.5, got.Hours)
	assert.Equal(t, "CC-200", got.CostCenter)

	require.NoError(t, st.Delete(ctx, id))
	assert.ErrorIs(t, st.Delete(ctx, id), domain.ErrNotFound)

	_, err = st.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDsNotReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.csv")
	st, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()

	id1, err := st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)
	id2, err := st.Insert(ctx, entry("Pedro Soto", 3, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)
	require.NoError(t, st.Delete(ctx, id2))

	// Reopening seeds the counter from the highest surviving id, so
	// new ids still move forward.
	st2, err := Open(path)
	require.NoError(t, err)
	id3, err := st2.Insert(ctx, entry("Pedro Soto", 4, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)
	assert.Greater(t, id3, id1)
}

func TestQuery_MonthFilter(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "horas.csv"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = st.Insert(ctx, entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100"))
	require.NoError(t, err)

	april := entry("Ana Rojas", 3, domain.HourTypeOrdinary, "CC-100")
	april.Date = time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC)
	_, err = st.Insert(ctx, april)
	require.NoError(t, err)

	rows, err := st.Query(ctx, domain.Filter{Year: 2026, Month: time.March})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.March, rows[0].Date.Month())
}
