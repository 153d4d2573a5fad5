package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
)

// RetryOptions bounds the backoff applied to transient store failures.
type RetryOptions struct {
	Attempts int
	Interval time.Duration
}

// WithRetry decorates a Store with bounded exponential backoff.
// Only connectivity failures are retried; duplicate/not-found are
// business outcomes and surface immediately. Once the attempts are
// exhausted the caller sees ErrUnavailable.
func WithRetry(inner Store, opt RetryOptions) Store {
	if opt.Attempts <= 0 {
		opt.Attempts = 3
	}
	if opt.Interval <= 0 {
		opt.Interval = 200 * time.Millisecond
	}
	return &retryStore{inner: inner, opt: opt}
}

type retryStore struct {
	inner Store
	opt   RetryOptions
}

func (s *retryStore) retry(ctx context.Context, op string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opt.Interval

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if permanent(err) {
			return backoff.Permanent(err)
		}
		log.Printf("[store] %s attempt %d failed: %v", op, attempt, err)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.opt.Attempts-1)), ctx))

	if err == nil || permanent(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, op, err)
}

// permanent reports errors that must never be retried.
func permanent(err error) bool {
	return errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (s *retryStore) Insert(ctx context.Context, e *domain.TimeEntry) (int64, error) {
	var id int64
	err := s.retry(ctx, "insert", func() error {
		var err error
		id, err = s.inner.Insert(ctx, e)
		return err
	})
	return id, err
}

func (s *retryStore) Update(ctx context.Context, id int64, f domain.UpdateFields) error {
	return s.retry(ctx, "update", func() error {
		return s.inner.Update(ctx, id, f)
	})
}

func (s *retryStore) Delete(ctx context.Context, id int64) error {
	return s.retry(ctx, "delete", func() error {
		return s.inner.Delete(ctx, id)
	})
}

func (s *retryStore) Query(ctx context.Context, f domain.Filter) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	err := s.retry(ctx, "query", func() error {
		var err error
		out, err = s.inner.Query(ctx, f)
		return err
	})
	return out, err
}

func (s *retryStore) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	var out *domain.TimeEntry
	err := s.retry(ctx, "get", func() error {
		var err error
		out, err = s.inner.Get(ctx, id)
		return err
	})
	return out, err
}
