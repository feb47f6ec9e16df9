package ports

// Package ports defines interfaces (hexagonal ports) for the user portal.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/domain/model"
)

// UserDirectory is the contract of the remote user service consumed by this
// application. Every business operation (authentication, OTP lifecycle,
// password management, profile and admin record CRUD) lives behind it; the
// portal itself only renders forms and coordinates calls.
//
// Operations return the server's message verbatim inside the error (see
// internal/errors.Upstream) when the service rejects a request. Methods that
// surface a success message to the user return it as a string.
type UserDirectory interface {
	// Register creates an account. The mobile number must carry the country prefix.
	Register(ctx context.Context, reg model.Registration) error

	// Login verifies credentials. A nil error means the credentials are valid.
	Login(ctx context.Context, email, password string) error

	// VerifyOTP confirms the one-time password issued at signup or password reset.
	VerifyOTP(ctx context.Context, email, otp string) error

	// ResendOTP requests a fresh OTP and returns the server's confirmation message.
	ResendOTP(ctx context.Context, email string) (string, error)

	// Logout notifies the service that the user signed out.
	Logout(ctx context.Context, email string) error

	// ForgotPassword starts the reset flow by mailing an OTP.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password after the OTP was verified.
	ResetPassword(ctx context.Context, email, newPassword string) error

	// ChangePassword rotates the password for a signed-in user and returns
	// the server's confirmation message.
	ChangePassword(ctx context.Context, email, current, newPassword string) (string, error)

	// Profile fetches the signed-in user's own record.
	Profile(ctx context.Context, email string) (model.Profile, error)

	// UpdateProfile updates the signed-in user's own record and returns the
	// server's confirmation message.
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (string, error)

	// Role looks up the authorization role for an email.
	Role(ctx context.Context, email string) (domainauth.Role, error)

	// ListUsers returns every directory record (admin only upstream).
	ListUsers(ctx context.Context) ([]model.User, error)

	// UpdateUser replaces a directory record by id (admin only upstream).
	UpdateUser(ctx context.Context, id string, user model.User) error

	// DeleteUser removes a directory record by id (admin only upstream).
	DeleteUser(ctx context.Context, id string) error
}

// SessionStore persists and retrieves browsing sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
