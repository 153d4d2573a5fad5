package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

func entry(person string, ht domain.HourType, hours float64, cc string, amount int64) domain.TimeEntry {
	return domain.TimeEntry{
		Person:        person,
		Date:          time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		HourType:      ht,
		Hours:         hours,
		CostCenter:    cc,
		AmountPayable: amount,
	}
}

func TestSummarize(t *testing.T) {
	entries := []domain.TimeEntry{
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-100", 0),
		entry("Pedro Soto", domain.HourTypeOrdinary, 4, "CC-100", 0),
		entry("Ana Rojas", domain.HourTypeOvertime, 3, "CC-100", 13500),
		entry("Ana Rojas", domain.HourTypeOrdinary, 2, "CC-200", 0),
	}

	rows := Summarize(entries)
	require.Len(t, rows, 3)

	assert.Equal(t, SummaryRow{CostCenter: "CC-100", HourType: domain.HourTypeOrdinary, TotalHours: 12, TotalAmount: 0}, rows[0])
	assert.Equal(t, SummaryRow{CostCenter: "CC-100", HourType: domain.HourTypeOvertime, TotalHours: 3, TotalAmount: 13500}, rows[1])
	assert.Equal(t, SummaryRow{CostCenter: "CC-200", HourType: domain.HourTypeOrdinary, TotalHours: 2, TotalAmount: 0}, rows[2])
}

func TestCostCenterTotals(t *testing.T) {
	entries := []domain.TimeEntry{
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-200", 0),
		entry("Ana Rojas", domain.HourTypeOvertime, 3, "CC-100", 13500),
		entry("Pedro Soto", domain.HourTypeOrdinary, 4, "CC-100", 0),
	}

	rows := CostCenterTotals(entries)
	require.Len(t, rows, 2)
	assert.Equal(t, CostCenterTotal{CostCenter: "CC-100", TotalHours: 7}, rows[0])
	assert.Equal(t, CostCenterTotal{CostCenter: "CC-200", TotalHours: 8}, rows[1])
}

func TestPersonTotals(t *testing.T) {
	entries := []domain.TimeEntry{
		entry("Pedro Soto", domain.HourTypeOrdinary, 4, "CC-100", 0),
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-100", 0),
		entry("Ana Rojas", domain.HourTypeOvertime, 3, "CC-100", 13500),
	}

	rows := PersonTotals(entries)
	require.Len(t, rows, 2)
	assert.Equal(t, PersonTotal{Person: "Ana Rojas", TotalHours: 11, TotalAmount: 13500}, rows[0])
	assert.Equal(t, PersonTotal{Person: "Pedro Soto", TotalHours: 4, TotalAmount: 0}, rows[1])
}

func TestProrateSalary(t *testing.T) {
	// 60/40 split of the month's hours across two cost centers.
	entries := []domain.TimeEntry{
		entry("Ana Rojas", domain.HourTypeOrdinary, 60, "CC-100", 0),
		entry("Ana Rojas", domain.HourTypeOrdinary, 40, "CC-200", 0),
	}
	salaries := SalaryTable{"Ana Rojas": decimal.NewFromInt(1000000)}

	rows, validation := ProrateSalary(entries, salaries)
	require.Len(t, rows, 2)

	assert.Equal(t, "CC-100", rows[0].CostCenter)
	assert.True(t, rows[0].Share.Equal(decimal.RequireFromString("0.6")), "share %s", rows[0].Share)
	assert.True(t, rows[0].ChargedAmount.Equal(decimal.NewFromInt(600000)), "charged %s", rows[0].ChargedAmount)
	assert.True(t, rows[1].ChargedAmount.Equal(decimal.NewFromInt(400000)), "charged %s", rows[1].ChargedAmount)

	require.Len(t, validation, 1)
	v := validation[0]
	assert.True(t, v.ChargedTotal.Equal(decimal.NewFromInt(1000000)), "charged total %s", v.ChargedTotal)
	assert.True(t, v.Difference.IsZero(), "difference %s", v.Difference)
	assert.False(t, v.MissingSalary)
	assert.False(t, v.OvertimeNoRate)
}

func TestProrateSalary_Flags(t *testing.T) {
	entries := []domain.TimeEntry{
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-100", 0),
		entry("Pedro Soto", domain.HourTypeOvertime, 3, "CC-100", 0),
	}
	salaries := SalaryTable{"Ana Rojas": decimal.NewFromInt(800000)}

	_, validation := ProrateSalary(entries, salaries)
	require.Len(t, validation, 2)

	ana, pedro := validation[0], validation[1]
	assert.Equal(t, "Ana Rojas", ana.Person)
	assert.False(t, ana.MissingSalary)

	assert.Equal(t, "Pedro Soto", pedro.Person)
	assert.True(t, pedro.MissingSalary, "no salary row on file")
	assert.True(t, pedro.OvertimeNoRate, "overtime stored at amount 0")
	assert.True(t, pedro.ChargedTotal.IsZero())
}

func TestLaborCost(t *testing.T) {
	entries := []domain.TimeEntry{
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-100", 0),
		entry("Ana Rojas", domain.HourTypeOrdinary, 8, "CC-200", 0),
		entry("Pedro Soto", domain.HourTypeOrdinary, 4, "CC-100", 0),
	}
	// 800000/160 = 5000 per hour for Ana; Pedro has no salary row.
	salaries := SalaryTable{"Ana Rojas": decimal.NewFromInt(800000)}

	byCC, byPerson := LaborCost(entries, salaries)

	require.Len(t, byCC, 2)
	assert.True(t, byCC[0].Amount.Equal(decimal.NewFromInt(40000)), "CC-100 %s", byCC[0].Amount)
	assert.True(t, byCC[1].Amount.Equal(decimal.NewFromInt(40000)), "CC-200 %s", byCC[1].Amount)

	require.Len(t, byPerson, 1)
	assert.Equal(t, "Ana Rojas", byPerson[0].Key)
	assert.True(t, byPerson[0].Amount.Equal(decimal.NewFromInt(80000)), "person total %s", byPerson[0].Amount)
}
