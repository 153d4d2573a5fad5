package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sfarfano/registro-horas/internal/auth/middleware"
	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
	"github.com/sfarfano/registro-horas/internal/timesheet/service"
)

const dateLayout = "2006-01-02"

func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		Name:  middleware.Person(c),
		Admin: middleware.IsAdmin(c),
	}
}

func (h *Handler) create(c *gin.Context) {
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), actorFrom(c), service.CreateRequest{
		Person:     req.Person,
		Date:       date,
		HourType:   domain.HourType(req.HourType),
		Hours:      req.Hours,
		CostCenter: req.CostCenter,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "entry": entry})
}

func (h *Handler) list(c *gin.Context) {
	f := domain.Filter{Person: c.Query("person")}

	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid year"})
			return
		}
		f.Year = year
	}
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid month"})
			return
		}
		f.Month = time.Month(month)
	}

	entries, err := h.svc.List(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entries": entries})
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), actorFrom(c), id, service.UpdateRequest{
		Date:       date,
		HourType:   domain.HourType(req.HourType),
		Hours:      req.Hours,
		CostCenter: req.CostCenter,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": entry})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrOvertimeNotAllowed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "time record store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
