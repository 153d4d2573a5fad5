package payrates

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestStatic(t *testing.T) {
	rates := Static{"Ana Rojas": decimal.NewFromInt(4500)}
	ctx := context.Background()

	rate, ok, err := rates.OvertimeRate(ctx, "Ana Rojas")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(4500)))

	_, ok, err = rates.OvertimeRate(ctx, "Pedro Soto")
	require.NoError(t, err)
	assert.False(t, ok, "no rate on file is not an error")
}

func TestFlatRate(t *testing.T) {
	flat := FlatRate{Rate: decimal.NewFromInt(4000)}

	rate, ok, err := flat.OvertimeRate(context.Background(), "anyone")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(4000)))
}

func TestWorkbookProvider(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Nombre", "Tarifa"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Ana Rojas", "4500"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Pedro Soto", "3999.5"}))

	path := filepath.Join(t.TempDir(), "tarifas.xlsx")
	require.NoError(t, f.SaveAs(path))

	p := NewWorkbookProvider(path)
	ctx := context.Background()

	rate, ok, err := p.OvertimeRate(ctx, "Pedro Soto")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("3999.5")))

	_, ok, err = p.OvertimeRate(ctx, "Nadie")
	require.NoError(t, err)
	assert.False(t, ok)
}
