package http

import (
	"github.com/sfarfano/registro-horas/internal/timesheet/service"
)

// Handler bundles the dependencies for time entry HTTP endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type entryReq struct {
	Person     string  `json:"person,omitempty"`
	Date       string  `json:"date"`
	HourType   string  `json:"hour_type"`
	Hours      float64 `json:"hours"`
	CostCenter string  `json:"cost_center"`
	Comment    string  `json:"comment"`
}
