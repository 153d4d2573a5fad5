// Package payrates maps persons to their overtime hourly rate. A
// person may have no rate on file; that is not an error, overtime is
// then accepted with a zero payable amount and flagged in reports.
package payrates

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	// OvertimeRate returns (rate, true) when the person has a rate
	// on file, and (zero, false) otherwise.
	OvertimeRate(ctx context.Context, person string) (decimal.Decimal, bool, error)
}

// Static is a fixed rate table, used in tests.
type Static map[string]decimal.Decimal

func (s Static) OvertimeRate(ctx context.Context, person string) (decimal.Decimal, bool, error) {
	r, ok := s[person]
	return r, ok, nil
}

// FlatRate pays every person the same overtime rate, matching the
// legacy deployments that hardcoded a single figure.
type FlatRate struct {
	Rate decimal.Decimal
}

func (f FlatRate) OvertimeRate(ctx context.Context, person string) (decimal.Decimal, bool, error) {
	return f.Rate, true, nil
}

// WorkbookProvider reads name/rate pairs from an Excel workbook,
// header row skipped, re-opened per request.
type WorkbookProvider struct {
	Path string
}

func NewWorkbookProvider(path string) *WorkbookProvider {
	return &WorkbookProvider{Path: path}
}

func (p *WorkbookProvider) OvertimeRate(ctx context.Context, person string) (decimal.Decimal, bool, error) {
	f, err := excelize.OpenFile(p.Path)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("open pay rate workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("read pay rate sheet: %w", err)
	}

	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		if strings.TrimSpace(row[0]) != person {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("parse rate for %s: %w", person, err)
		}
		return rate, true, nil
	}
	return decimal.Zero, false, nil
}
