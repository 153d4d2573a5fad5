package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfarfano/registro-horas/config"
	"github.com/sfarfano/registro-horas/internal/timesheet/store"
	"github.com/sfarfano/registro-horas/internal/timesheet/store/csvfile"
	"github.com/sfarfano/registro-horas/internal/timesheet/store/postgres"
	"github.com/sfarfano/registro-horas/internal/timesheet/store/sqlite"
)

// OpenStore builds the configured time record store, wrapped in the
// bounded-retry decorator. The returned pool is nil unless the
// postgres backend is active; close is never nil.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (store.Store, *pgxpool.Pool, func(), error) {
	retry := store.RetryOptions{
		Attempts: cfg.RetryAttempts,
		Interval: cfg.RetryInterval,
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, nil, err
		}
		return store.WithRetry(postgres.New(pool), retry), pool, pool.Close, nil

	case config.BackendSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.WithRetry(st, retry), nil, func() { st.Close() }, nil

	case config.BackendCSV:
		st, err := csvfile.Open(cfg.CSVPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.WithRetry(st, retry), nil, func() {}, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
