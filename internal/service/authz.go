package service

import (
	"context"
	"log/slog"
	"strings"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/ports"
)

// AuthorizerOptions groups dependencies for Authorizer.
type AuthorizerOptions struct {
	Directory ports.UserDirectory
	Logger    *slog.Logger // Optional
}

// Authorizer is the single authorization capability for the portal. Both the
// navigation bar (to decide whether to show the admin link) and the route
// guard consult it, so the two can never drift apart.
type Authorizer struct {
	directory ports.UserDirectory
	logger    *slog.Logger
}

// NewAuthorizer constructs a new Authorizer.
func NewAuthorizer(opts AuthorizerOptions) *Authorizer {
	return &Authorizer{directory: opts.Directory, logger: opts.Logger}
}

// IsAdmin resolves the role for an email via the user service. Any lookup
// failure (transport, non-2xx, unknown email) reports non-admin; the caller
// redirects instead of retrying.
func (a *Authorizer) IsAdmin(ctx context.Context, email string) bool {
	role, err := a.directory.Role(ctx, email)
	if err != nil {
		if a.logger != nil {
			a.logger.WarnContext(ctx, "role lookup failed, treating as non-admin", "email", email, "error", err)
		}
		return false
	}
	return role == domainauth.RoleAdmin
}

// Decision is the outcome of a route authorization check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var (
	allow = Decision{Allow: true}

	// publicPaths never require a session. The change-password page is
	// registered here for parity with the original routing table; its handler
	// still bounces to login when no session email is available.
	publicPaths = map[string]bool{
		"/login":            true,
		"/signup":           true,
		"/otp-verification": true,
		"/forgot-password":  true,
		"/reset-password":   true,
		"/changepassword":   true,
	}

	sessionPaths = map[string]bool{
		"/homepage": true,
		"/profile":  true,
	}
)

// CanEnter decides whether a navigation target may render for the given
// session (nil means signed out).
//
//	public paths          -> allow
//	/homepage, /profile   -> session required, else /login
//	/admin                -> session plus admin role, else /login or /homepage
//	/                     -> /login
//	anything else         -> allow (the router's 404 handles it)
func (a *Authorizer) CanEnter(ctx context.Context, path string, sess *domainauth.Session) Decision {
	path = normalizePath(path)

	switch {
	case publicPaths[path]:
		return allow
	case sessionPaths[path]:
		if sess == nil {
			return Decision{RedirectTo: "/login"}
		}
		return allow
	case path == "/admin":
		if sess == nil {
			return Decision{RedirectTo: "/login"}
		}
		if !a.IsAdmin(ctx, sess.Email) {
			return Decision{RedirectTo: "/homepage"}
		}
		return allow
	case path == "/" || path == "":
		return Decision{RedirectTo: "/login"}
	default:
		return allow
	}
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
