// Package session stores login sessions in Redis. Each login gets an
// explicit session object under an opaque token; nothing about the
// current user lives in process-wide state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rh:session:" // rh:session:{token}

var ErrNotFound = errors.New("session not found")

// Session is what the middleware resolves a token into.
type Session struct {
	Token     string    `json:"token"`
	Person    string    `json:"person"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create issues a new session token for the person.
func (s *Store) Create(ctx context.Context, person string, admin bool) (*Session, error) {
	sess := &Session{
		Token:     uuid.NewString(),
		Person:    person,
		Admin:     admin,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.Token), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get resolves a token, refreshing its TTL on use.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Sliding expiry; a failed refresh only shortens the session.
	_ = s.client.Expire(ctx, s.key(token), s.ttl).Err()

	return &sess, nil
}

// Delete invalidates a token (logout). Deleting a missing token is
// not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) key(token string) string {
	return keyPrefix + token
}
