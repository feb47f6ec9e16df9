package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/domain/model"
	"github.com/caseworks/user-portal/internal/ports"
)

const defaultSessionTTL = 30 * time.Minute

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Directory  ports.UserDirectory
	Sessions   ports.SessionStore
	SessionTTL time.Duration // Optional: defaults to 30 minutes
	Logger     *slog.Logger  // Optional
	Now        func() time.Time
}

// AuthService orchestrates the authentication flows. The user service is the
// source of truth for credentials and OTPs; this service owns only the
// server-side session that carries the signed-in (or mid-flow) email between
// requests. Sessions exist for three reasons: a completed login, a signup
// awaiting OTP verification, and a forgot-password awaiting reset. The last
// two are torn down as soon as their flow completes.
type AuthService struct {
	directory ports.UserDirectory
	sessions  ports.SessionStore
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		directory: opts.Directory,
		sessions:  opts.Sessions,
		ttl:       ttl,
		logger:    opts.Logger,
		now:       now,
	}
}

func (s *AuthService) newSession(ctx context.Context, email string) (domainauth.Session, error) {
	now := s.now()
	sess := domainauth.Session{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Login verifies credentials upstream and opens a session for the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	if err := s.directory.Login(ctx, email, password); err != nil {
		return domainauth.Session{}, err
	}
	sess, err := s.newSession(ctx, email)
	if err != nil {
		return domainauth.Session{}, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "user logged in", "email", email)
	}
	return sess, nil
}

// SignUp registers the account upstream and opens a session carrying the
// email into the OTP verification page. The account is not yet usable; the
// session only bridges the two-step flow.
func (s *AuthService) SignUp(ctx context.Context, reg model.Registration) (domainauth.Session, error) {
	if err := s.directory.Register(ctx, reg); err != nil {
		return domainauth.Session{}, err
	}
	return s.newSession(ctx, reg.Email)
}

// VerifyOTP confirms the one-time password and tears the bridging session
// down; the user signs in afresh afterwards.
func (s *AuthService) VerifyOTP(ctx context.Context, sess domainauth.Session, otp string) error {
	if err := s.directory.VerifyOTP(ctx, sess.Email, otp); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResendOTP requests a fresh OTP for the email and returns the server's
// confirmation message.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	return s.directory.ResendOTP(ctx, email)
}

// BeginPasswordReset triggers the upstream OTP mail and opens a session
// carrying the email into the reset page.
func (s *AuthService) BeginPasswordReset(ctx context.Context, email string) (domainauth.Session, error) {
	if err := s.directory.ForgotPassword(ctx, email); err != nil {
		return domainauth.Session{}, err
	}
	return s.newSession(ctx, email)
}

// CompletePasswordReset verifies the OTP, sets the new password, and tears
// the bridging session down. The two upstream calls are sequential; a failed
// OTP check never reaches the password endpoint.
func (s *AuthService) CompletePasswordReset(ctx context.Context, sess domainauth.Session, otp, newPassword string) error {
	if err := s.directory.VerifyOTP(ctx, sess.Email, otp); err != nil {
		return err
	}
	if err := s.directory.ResetPassword(ctx, sess.Email, newPassword); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ChangePassword rotates the password for a signed-in user and returns the
// server's confirmation message.
func (s *AuthService) ChangePassword(ctx context.Context, email, current, newPassword string) (string, error) {
	return s.directory.ChangePassword(ctx, email, current, newPassword)
}

// Logout notifies the user service and destroys the local session. The local
// session dies even when the upstream call fails; a user who clicked logout
// must never stay signed in here because a remote service was down.
func (s *AuthService) Logout(ctx context.Context, sess domainauth.Session) error {
	if err := s.directory.Logout(ctx, sess.Email); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "upstream logout failed", "email", sess.Email, "error", err)
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "user logged out", "email", sess.Email)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}
