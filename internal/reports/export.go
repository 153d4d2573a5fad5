package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

const dateLayout = "2006-01-02"

// Export holds the tables of one report run; BuildWorkbook writes
// them out one sheet per table.
type Export struct {
	Entries          []domain.TimeEntry
	Summary          []SummaryRow
	CostCenters      []CostCenterTotal
	Persons          []PersonTotal
	Proration        []ProrationRow
	Validation       []ValidationRow
	LaborCostByCC    []LaborCostRow
	LaborCostByPers  []LaborCostRow
	IncludeProration bool
}

// WriteWorkbook streams the report as an xlsx file.
func (x Export) WriteWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Detail", detailHeader, detailRows(x.Entries), true); err != nil {
		return err
	}
	if err := writeSheet(f, "Summary", []string{"Cost Center", "Hour Type", "Total Hours", "Total Amount"}, summaryRows(x.Summary), false); err != nil {
		return err
	}
	if err := writeSheet(f, "CostCenters", []string{"Cost Center", "Total Hours"}, costCenterRows(x.CostCenters), false); err != nil {
		return err
	}
	if err := writeSheet(f, "Persons", []string{"Person", "Total Hours", "Total Amount"}, personRows(x.Persons), false); err != nil {
		return err
	}

	if x.IncludeProration {
		if err := writeSheet(f, "Proration", []string{"Person", "Cost Center", "Hours", "Share", "Charged Amount"}, prorationRows(x.Proration), false); err != nil {
			return err
		}
		if err := writeSheet(f, "Validation", []string{"Person", "Net Salary", "Charged Total", "Difference", "Missing Salary", "Overtime Without Rate"}, validationRows(x.Validation), false); err != nil {
			return err
		}
		if err := writeSheet(f, "LaborCostCC", []string{"Cost Center", "Amount"}, laborCostRows(x.LaborCostByCC), false); err != nil {
			return err
		}
		if err := writeSheet(f, "LaborCostPersons", []string{"Person", "Amount"}, laborCostRows(x.LaborCostByPers), false); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

var detailHeader = []string{"ID", "Person", "Date", "Hour Type", "Hours", "Cost Center", "Comment", "Amount Payable"}

// writeSheet fills one sheet with a header and rows. The first sheet
// replaces excelize's default "Sheet1".
func writeSheet(f *excelize.File, name string, header []string, rows [][]any, first bool) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &head); err != nil {
		return fmt.Errorf("sheet %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func detailRows(entries []domain.TimeEntry) [][]any {
	out := make([][]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, []any{
			e.ID, e.Person, e.Date.Format(dateLayout), string(e.HourType),
			e.Hours, e.CostCenter, e.Comment, e.AmountPayable,
		})
	}
	return out
}

func summaryRows(rows []SummaryRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.CostCenter, string(r.HourType), r.TotalHours, r.TotalAmount})
	}
	return out
}

func costCenterRows(rows []CostCenterTotal) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.CostCenter, r.TotalHours})
	}
	return out
}

func personRows(rows []PersonTotal) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Person, r.TotalHours, r.TotalAmount})
	}
	return out
}

func prorationRows(rows []ProrationRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		share, _ := r.Share.Float64()
		amount, _ := r.ChargedAmount.Float64()
		out = append(out, []any{r.Person, r.CostCenter, r.Hours, share, amount})
	}
	return out
}

func validationRows(rows []ValidationRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		salary, _ := r.NetSalary.Float64()
		total, _ := r.ChargedTotal.Float64()
		diff, _ := r.Difference.Float64()
		out = append(out, []any{r.Person, salary, total, diff, r.MissingSalary, r.OvertimeNoRate})
	}
	return out
}

func laborCostRows(rows []LaborCostRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		amount, _ := r.Amount.Float64()
		out = append(out, []any{r.Key, amount})
	}
	return out
}
