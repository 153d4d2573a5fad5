package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseSalaryWorkbook reads the uploaded monthly salary workbook:
// first sheet, header row, name in column A and net salary in
// column B. Thousands separators are tolerated.
func ParseSalaryWorkbook(r io.Reader) (SalaryTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open salary workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read salary sheet: %w", err)
	}

	table := make(SalaryTable, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		raw := strings.TrimSpace(row[1])
		if name == "" || raw == "" {
			continue
		}
		raw = strings.ReplaceAll(raw, ",", "")
		salary, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse salary for %s: %w", name, err)
		}
		table[name] = salary
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("salary workbook has no usable rows")
	}
	return table, nil
}
