package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen or Redis.

import (
	"context"
	"errors"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.SessionStore = (*MemorySessionStore)(nil)

// ErrNotFound is returned by mocks when an entity is not present.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session

	// SaveErr, when set, makes Save fail. Used to exercise error paths.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }
