package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
	"github.com/sfarfano/registro-horas/internal/timesheet/store/memory"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.New()
	ctx := context.Background()
	seed := []domain.TimeEntry{
		{
			Person:     "Ana Rojas",
			Date:       time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			HourType:   domain.HourTypeOrdinary,
			Hours:      8,
			CostCenter: "CC-100",
		},
		{
			Person:        "Ana Rojas",
			Date:          time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
			HourType:      domain.HourTypeOvertime,
			Hours:         3,
			CostCenter:    "CC-200",
			AmountPayable: 13500,
		},
		{
			Person:     "Pedro Soto",
			Date:       time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			HourType:   domain.HourTypeOrdinary,
			Hours:      4,
			CostCenter: "CC-100",
		},
	}
	for i := range seed {
		_, err := st.Insert(ctx, &seed[i])
		require.NoError(t, err)
	}

	r := gin.New()
	New(st).Register(r.Group("/reports"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func salaryForm(t *testing.T, rows [][]any) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("salaries", "sueldos.xlsx")
	require.NoError(t, err)
	require.NoError(t, f.Write(part))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestSummary(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/reports/summary?year=2026&month=3")
	require.Equal(t, http.StatusOK, w.Code)

	rows := decodeBody(t, w)["summary"].([]any)
	require.Len(t, rows, 2, "april entry excluded")

	first := rows[0].(map[string]any)
	assert.Equal(t, "CC-100", first["cost_center"])
	assert.Equal(t, "ordinary", first["hour_type"])
	assert.Equal(t, float64(8), first["total_hours"])
}

func TestSummary_InvalidMonth(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/reports/summary?year=2026&month=13")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCostCentersAndPersons(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/reports/cost-centers?year=2026&month=3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["cost_centers"].([]any), 2)

	w = get(r, "/reports/persons?year=2026&month=3")
	require.Equal(t, http.StatusOK, w.Code)
	persons := decodeBody(t, w)["persons"].([]any)
	require.Len(t, persons, 1)
	ana := persons[0].(map[string]any)
	assert.Equal(t, float64(11), ana["total_hours"])
	assert.Equal(t, float64(13500), ana["total_amount"])
}

func TestPayroll(t *testing.T) {
	r := newTestRouter(t)

	body, contentType := salaryForm(t, [][]any{
		{"Nombre", "Sueldo"},
		{"Ana Rojas", "880000"},
	})
	req := httptest.NewRequest(http.MethodPost, "/reports/payroll?year=2026&month=3", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeBody(t, w)
	assert.Len(t, got["proration"].([]any), 2)
	validation := got["validation"].([]any)
	require.Len(t, validation, 1)
	assert.Equal(t, false, validation[0].(map[string]any)["missing_salary"])
}

func TestPayroll_MissingUpload(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/reports/payroll?year=2026&month=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/reports/export?year=2026&month=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reporte_horas.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Detail", "Summary", "CostCenters", "Persons"}, f.GetSheetList())
}

func TestExport_WithSalaries(t *testing.T) {
	r := newTestRouter(t)

	body, contentType := salaryForm(t, [][]any{
		{"Nombre", "Sueldo"},
		{"Ana Rojas", "880000"},
	})
	req := httptest.NewRequest(http.MethodPost, "/reports/export?year=2026&month=3", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Proration")
	assert.Contains(t, f.GetSheetList(), "Validation")
}
