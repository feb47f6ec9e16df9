// Package redis provides the Redis-backed session store for the portal.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
)

// ErrNotFound is returned when no session exists for an id. An unknown or
// expired cookie resolves to this, which the HTTP layer treats as signed out.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

// SessionStore persists sessions as JSON values keyed by session id. The
// Redis TTL is derived from the session's ExpiresAt, so expiry needs no
// reaper process.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a session store with the default "session:" key prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "session:")
}

// NewSessionStoreWithPrefix creates a session store with a custom key prefix.
// Tests use distinct prefixes to share one Redis instance.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

// Save writes the session under its id with a TTL matching ExpiresAt.
// Already-expired sessions are rejected rather than written with no TTL.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get loads a session by id. Expired sessions that Redis has not yet evicted
// are deleted and reported as ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	if sess.Expired(time.Now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
