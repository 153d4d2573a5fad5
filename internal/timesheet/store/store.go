package store

import (
	"context"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

// Store is the single persistence contract for time entries. One
// concrete adapter is wired per deployment target (postgres, sqlite,
// csv); the service layer is written once against this interface.
type Store interface {
	Insert(ctx context.Context, e *domain.TimeEntry) (int64, error)
	Update(ctx context.Context, id int64, f domain.UpdateFields) error
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error)
	Get(ctx context.Context, id int64) (*domain.TimeEntry, error)
}
