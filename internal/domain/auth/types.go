package auth

// Package auth contains domain-level types for sessions and authorization.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role as reported by the
// user directory. Keep string form for easy persistence and comparison
// against wire values.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the server-side record persisted for a browsing session.
// ID is an opaque session identifier. Email is the session marker; its
// presence is what the application treats as proof of authentication.
// Sessions are also created for pre-authentication flows (signup awaiting
// OTP verification, forgot-password awaiting reset) because those flows
// carry the email between pages.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's server-side TTL has passed.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
