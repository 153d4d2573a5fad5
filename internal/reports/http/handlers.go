package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sfarfano/registro-horas/internal/reports"
	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
	"github.com/sfarfano/registro-horas/internal/timesheet/store"
)

// Handler bundles the dependencies for the admin report endpoints.
type Handler struct {
	store store.Store
}

func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// monthFilter reads year/month query params, defaulting to the
// current month.
func monthFilter(c *gin.Context) (domain.Filter, error) {
	now := time.Now().UTC()
	f := domain.Filter{Year: now.Year(), Month: now.Month()}

	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, fmt.Errorf("invalid year")
		}
		f.Year = year
	}
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return f, fmt.Errorf("invalid month")
		}
		f.Month = time.Month(month)
	}
	return f, nil
}

func (h *Handler) monthEntries(c *gin.Context) ([]domain.TimeEntry, bool) {
	f, err := monthFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return nil, false
	}

	entries, err := h.store.Query(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
		return nil, false
	}
	return entries, true
}

func (h *Handler) summary(c *gin.Context) {
	entries, ok := h.monthEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": reports.Summarize(entries)})
}

func (h *Handler) costCenters(c *gin.Context) {
	entries, ok := h.monthEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "cost_centers": reports.CostCenterTotals(entries)})
}

func (h *Handler) persons(c *gin.Context) {
	entries, ok := h.monthEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "persons": reports.PersonTotals(entries)})
}

func (h *Handler) salaryTable(c *gin.Context) (reports.SalaryTable, bool, error) {
	fh, err := c.FormFile("salaries")
	if err != nil {
		return nil, false, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, false, err
	}
	defer src.Close()

	table, err := reports.ParseSalaryWorkbook(src)
	if err != nil {
		return nil, false, err
	}
	return table, true, nil
}

// payroll computes the salary proration and its validation view from
// the uploaded salary workbook.
func (h *Handler) payroll(c *gin.Context) {
	entries, ok := h.monthEntries(c)
	if !ok {
		return
	}

	table, uploaded, err := h.salaryTable(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !uploaded {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "salaries file is required"})
		return
	}

	proration, validation := reports.ProrateSalary(entries, table)
	byCC, byPerson := reports.LaborCost(entries, table)

	c.JSON(http.StatusOK, gin.H{
		"ok":                   true,
		"proration":            proration,
		"validation":           validation,
		"labor_cost_by_cc":     byCC,
		"labor_cost_by_person": byPerson,
	})
}

// export streams the consolidated xlsx report. The salary workbook is
// optional; without it only the hour tables are included.
func (h *Handler) export(c *gin.Context) {
	entries, ok := h.monthEntries(c)
	if !ok {
		return
	}

	x := reports.Export{
		Entries:     entries,
		Summary:     reports.Summarize(entries),
		CostCenters: reports.CostCenterTotals(entries),
		Persons:     reports.PersonTotals(entries),
	}

	table, uploaded, err := h.salaryTable(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if uploaded {
		x.IncludeProration = true
		x.Proration, x.Validation = reports.ProrateSalary(entries, table)
		x.LaborCostByCC, x.LaborCostByPers = reports.LaborCost(entries, table)
	}

	var buf bytes.Buffer
	if err := x.WriteWorkbook(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte_horas.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
