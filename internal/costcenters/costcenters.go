// Package costcenters provides the ordered list of projects hours
// may be charged against.
package costcenters

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Provider returns the active cost centers in workbook order,
// re-read per request.
type Provider interface {
	Active(ctx context.Context) ([]string, error)
}

// Contains reports whether name is an active cost center.
func Contains(active []string, name string) bool {
	for _, cc := range active {
		if cc == name {
			return true
		}
	}
	return false
}

// Static is a fixed list, used in tests.
type Static []string

func (s Static) Active(ctx context.Context) ([]string, error) {
	return s, nil
}

// WorkbookProvider reads the first column of the first sheet, no
// header row, matching the legacy project-list workbook.
type WorkbookProvider struct {
	Path string
}

func NewWorkbookProvider(path string) *WorkbookProvider {
	return &WorkbookProvider{Path: path}
}

func (p *WorkbookProvider) Active(ctx context.Context) ([]string, error) {
	f, err := excelize.OpenFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open cost center workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read cost center sheet: %w", err)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cc := strings.TrimSpace(row[0])
		if cc != "" {
			out = append(out, cc)
		}
	}
	return out, nil
}
