package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/service"
)

// SessionCookieName is the cookie that carries the server-side session ID.
// It is a browser-session cookie (no MaxAge): a fresh browser starts signed out.
const SessionCookieName = "session_id"

// SessionResolver retrieves a session by its ID.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// RouteAuthorizer decides whether a navigation target may render for a session.
type RouteAuthorizer interface {
	CanEnter(ctx context.Context, path string, sess *domainauth.Session) service.Decision
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WithSession returns a middleware that resolves the session_id cookie and, when
// it maps to a live server-side session, stores the session in the request
// context. Requests without a valid session pass through unauthenticated.
func WithSession(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, sessions); session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard returns a middleware that enforces the navigation rules for every
// request path. It consults the same Authorizer the navbar uses, so the link
// set and the reachable routes can never disagree. Redirect decisions become
// a 303 for plain browsers and an Hx-Redirect for htmx requests.
func Guard(authz RouteAuthorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			decision := authz.CanEnter(r.Context(), r.URL.Path, sess)
			if !decision.Allow {
				redirectBrowser(w, r, decision.RedirectTo)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectBrowser issues a navigation redirect appropriate for the request kind.
func redirectBrowser(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, sessions SessionResolver) *domainauth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	session, err := sessions.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return session
}
