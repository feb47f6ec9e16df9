// Package httpx contains the HTTP surface of the user portal: middleware,
// template rendering, and the page handlers that front the remote user
// service. Handlers validate input, call the service layer, and render
// server-side HTML; no business rule lives here.
package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	apperrors "github.com/caseworks/user-portal/internal/errors"
	"github.com/caseworks/user-portal/internal/service"
)

// genericFailureMessage is shown when the user service cannot be reached at all.
const genericFailureMessage = "Something went wrong. Please try again."

// UIHandlers serves the portal's pages.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          *service.AuthService
	Authz         *service.Authorizer
	Profiles      *service.ProfileService
	Admin         *service.AdminService
	CookieDomain  string
	CountryPrefix string // Prepended to mobile numbers on the wire, stripped for display
	Logger        *slog.Logger
}

// pageData builds the common template data for a page: layout metadata, the
// session-derived nav state, and any pending flash notice. The admin nav link
// is resolved through the same Authorizer the route guard uses.
func (h *UIHandlers) pageData(w http.ResponseWriter, r *http.Request, meta PageMeta) *TemplateDataBuilder {
	b := NewTemplateData(r, meta)
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		b.With("IsAdmin", h.Authz.IsAdmin(r.Context(), sess.Email))
	}
	b.WithNotice(takeFlash(w, r, h.CookieDomain))
	return b
}

// render writes the page, honoring htmx partial requests.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	var err error
	if WantsPartial(r) {
		err = h.T.RenderPartial(w, r, data)
	} else {
		err = h.T.RenderFull(w, r, data)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed",
			"page", data["CurrentPage"], "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// requireSession returns the request session or redirects to /login. Pages
// registered as public can still need a session email to do anything useful
// (the OTP and change-password pages); this is their handler-level bounce.
func (h *UIHandlers) requireSession(w http.ResponseWriter, r *http.Request) (*domainauth.Session, bool) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectBrowser(w, r, "/login")
		return nil, false
	}
	return sess, true
}

// setSessionCookie installs the session marker as a browser-session cookie.
// No MaxAge: closing the browser forgets the session regardless of server TTL.
func (h *UIHandlers) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UIHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// failureMessage picks the text shown for a failed upstream call: the
// server's message verbatim when it sent one, the form-specific fallback when
// it did not, and the generic message when the service was unreachable.
func failureMessage(err error, rejectedFallback string) string {
	if apperrors.IsUpstream(err) {
		return apperrors.UserMessage(err, rejectedFallback)
	}
	return genericFailureMessage
}
