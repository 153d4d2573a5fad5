// Package reports derives read-only consolidated views over the
// stored time entries for a selected month. Every report run
// re-reads and re-aggregates from scratch; nothing is incremental.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

// monthlyHours is the divisor turning a net salary into an hourly
// value for labor-cost cross-charging, as the legacy reports did.
var monthlyHours = decimal.NewFromInt(160)

// SalaryTable maps person → net monthly salary, parsed from the
// uploaded salary workbook.
type SalaryTable map[string]decimal.Decimal

type SummaryRow struct {
	CostCenter  string          `json:"cost_center"`
	HourType    domain.HourType `json:"hour_type"`
	TotalHours  float64         `json:"total_hours"`
	TotalAmount int64           `json:"total_amount"`
}

type CostCenterTotal struct {
	CostCenter string  `json:"cost_center"`
	TotalHours float64 `json:"total_hours"`
}

type PersonTotal struct {
	Person      string  `json:"person"`
	TotalHours  float64 `json:"total_hours"`
	TotalAmount int64   `json:"total_amount"`
}

type ProrationRow struct {
	Person        string          `json:"person"`
	CostCenter    string          `json:"cost_center"`
	Hours         float64         `json:"hours"`
	Share         decimal.Decimal `json:"share"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
}

// ValidationRow recomputes the charged total per person. Difference
// must be ~0; anything else signals a data or computation defect.
type ValidationRow struct {
	Person         string          `json:"person"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	ChargedTotal   decimal.Decimal `json:"charged_total"`
	Difference     decimal.Decimal `json:"difference"`
	MissingSalary  bool            `json:"missing_salary"`
	OvertimeNoRate bool            `json:"overtime_no_rate"`
}

type LaborCostRow struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// Summarize groups entries by (cost_center, hour_type).
func Summarize(entries []domain.TimeEntry) []SummaryRow {
	type key struct {
		cc string
		ht domain.HourType
	}
	acc := make(map[key]*SummaryRow)
	for _, e := range entries {
		k := key{e.CostCenter, e.HourType}
		row, ok := acc[k]
		if !ok {
			row = &SummaryRow{CostCenter: e.CostCenter, HourType: e.HourType}
			acc[k] = row
		}
		row.TotalHours += e.Hours
		row.TotalAmount += e.AmountPayable
	}

	out := make([]SummaryRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CostCenter != out[j].CostCenter {
			return out[i].CostCenter < out[j].CostCenter
		}
		return out[i].HourType < out[j].HourType
	})
	return out
}

// CostCenterTotals sums hours by cost center, for labor-cost
// cross-charging.
func CostCenterTotals(entries []domain.TimeEntry) []CostCenterTotal {
	acc := make(map[string]float64)
	for _, e := range entries {
		acc[e.CostCenter] += e.Hours
	}

	out := make([]CostCenterTotal, 0, len(acc))
	for cc, hours := range acc {
		out = append(out, CostCenterTotal{CostCenter: cc, TotalHours: hours})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CostCenter < out[j].CostCenter })
	return out
}

// PersonTotals sums hours and payable amounts by person.
func PersonTotals(entries []domain.TimeEntry) []PersonTotal {
	acc := make(map[string]*PersonTotal)
	for _, e := range entries {
		row, ok := acc[e.Person]
		if !ok {
			row = &PersonTotal{Person: e.Person}
			acc[e.Person] = row
		}
		row.TotalHours += e.Hours
		row.TotalAmount += e.AmountPayable
	}

	out := make([]PersonTotal, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Person < out[j].Person })
	return out
}

// ProrateSalary splits each person's net salary across cost centers
// in proportion to hours logged against each, and recomputes the
// per-person charged total as a validation view.
func ProrateSalary(entries []domain.TimeEntry, salaries SalaryTable) ([]ProrationRow, []ValidationRow) {
	type key struct{ person, cc string }

	hoursByKey := make(map[key]float64)
	totalByPerson := make(map[string]float64)
	overtimeNoRate := make(map[string]bool)
	for _, e := range entries {
		hoursByKey[key{e.Person, e.CostCenter}] += e.Hours
		totalByPerson[e.Person] += e.Hours
		if e.HourType == domain.HourTypeOvertime && e.AmountPayable == 0 {
			overtimeNoRate[e.Person] = true
		}
	}

	rows := make([]ProrationRow, 0, len(hoursByKey))
	charged := make(map[string]decimal.Decimal)
	for k, hours := range hoursByKey {
		total := totalByPerson[k.person]
		if total == 0 {
			continue
		}
		share := decimal.NewFromFloat(hours).Div(decimal.NewFromFloat(total))

		var amount decimal.Decimal
		if salary, ok := salaries[k.person]; ok {
			amount = share.Mul(salary)
		}
		charged[k.person] = charged[k.person].Add(amount)

		rows = append(rows, ProrationRow{
			Person:        k.person,
			CostCenter:    k.cc,
			Hours:         hours,
			Share:         share,
			ChargedAmount: amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Person != rows[j].Person {
			return rows[i].Person < rows[j].Person
		}
		return rows[i].CostCenter < rows[j].CostCenter
	})

	validation := make([]ValidationRow, 0, len(totalByPerson))
	for person := range totalByPerson {
		salary, hasSalary := salaries[person]
		row := ValidationRow{
			Person:         person,
			NetSalary:      salary,
			ChargedTotal:   charged[person],
			Difference:     salary.Sub(charged[person]),
			MissingSalary:  !hasSalary,
			OvertimeNoRate: overtimeNoRate[person],
		}
		validation = append(validation, row)
	}
	sort.Slice(validation, func(i, j int) bool { return validation[i].Person < validation[j].Person })

	return rows, validation
}

// LaborCost values every logged hour at net_salary/160 and sums the
// result by cost center and by person (the legacy consolidated
// sheets). Persons without a salary row contribute nothing.
func LaborCost(entries []domain.TimeEntry, salaries SalaryTable) (byCostCenter, byPerson []LaborCostRow) {
	ccAcc := make(map[string]decimal.Decimal)
	personAcc := make(map[string]decimal.Decimal)

	for _, e := range entries {
		salary, ok := salaries[e.Person]
		if !ok {
			continue
		}
		hourly := salary.Div(monthlyHours)
		amount := decimal.NewFromFloat(e.Hours).Mul(hourly)
		ccAcc[e.CostCenter] = ccAcc[e.CostCenter].Add(amount)
		personAcc[e.Person] = personAcc[e.Person].Add(amount)
	}

	byCostCenter = sortedRows(ccAcc)
	byPerson = sortedRows(personAcc)
	return byCostCenter, byPerson
}

func sortedRows(acc map[string]decimal.Decimal) []LaborCostRow {
	out := make([]LaborCostRow, 0, len(acc))
	for k, v := range acc {
		out = append(out, LaborCostRow{Key: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
