package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookProvider reads the roster from an Excel workbook, one row
// per person: name, PIN, optional admin marker. The header row is
// skipped. The file is opened on every call so edits to the workbook
// are picked up without a restart.
type WorkbookProvider struct {
	Path string
}

func NewWorkbookProvider(path string) *WorkbookProvider {
	return &WorkbookProvider{Path: path}
}

func (p *WorkbookProvider) Roster(ctx context.Context) ([]Person, error) {
	f, err := excelize.OpenFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read roster sheet: %w", err)
	}

	out := make([]Person, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		pin := strings.TrimSpace(row[1])
		if name == "" || pin == "" {
			continue
		}
		admin := false
		if len(row) > 2 {
			admin = isAdminMark(row[2])
		}
		out = append(out, Person{Name: name, PIN: pin, Admin: admin})
	}
	return out, nil
}

func isAdminMark(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "x", "yes", "si", "sí", "true", "admin", "1":
		return true
	}
	return false
}
