package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	userportal "github.com/caseworks/user-portal"
	"github.com/caseworks/user-portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          *service.AuthService
	Authz         *service.Authorizer
	Profiles      *service.ProfileService
	Admin         *service.AdminService
	CookieDomain  string
	CountryPrefix string
	IsDev         bool         // Development mode flag for disk-based templates
	Logger        *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router. Session loading and the
// navigation guard are applied here so every route sees the same rules; the
// caller adds the outer logging/recovery middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	h := setupUIHandlers(services)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	if h != nil {
		registerPageRoutes(mux, h)
	}

	return WithSession(services.Auth)(Guard(services.Authz)(mux))
}

func registerPageRoutes(mux *http.ServeMux, h *UIHandlers) {
	// The root path never renders; the guard decides where it goes.
	mux.Handle("GET /{$}", http.RedirectHandler("/login", http.StatusSeeOther))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /signup", h.SignupPage)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("GET /otp-verification", h.OTPPage)
	mux.HandleFunc("POST /otp-verification", h.VerifyOTP)
	mux.HandleFunc("POST /otp-verification/resend", h.ResendOTP)
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("GET /reset-password", h.ResetPasswordPage)
	mux.HandleFunc("POST /reset-password", h.ResetPassword)
	mux.HandleFunc("GET /changepassword", h.ChangePasswordPage)
	mux.HandleFunc("POST /changepassword", h.ChangePassword)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("GET /homepage", h.Homepage)
	mux.HandleFunc("GET /profile", h.ProfilePage)
	mux.HandleFunc("POST /profile", h.UpdateProfile)
	mux.HandleFunc("POST /profile/resend-otp", h.ActivateAccount)

	mux.HandleFunc("GET /admin", h.AdminPage)
	mux.HandleFunc("POST /admin/rows/{id}/edit", h.AdminRowEdit)
	mux.HandleFunc("POST /admin/rows/{id}/cancel", h.AdminRowCancel)
	mux.HandleFunc("POST /admin/rows/{id}/save", h.AdminRowSave)
	mux.HandleFunc("POST /admin/rows/{id}/delete", h.AdminRowDelete)
	mux.HandleFunc("POST /admin/confirm", h.AdminConfirm)
	mux.HandleFunc("POST /admin/dismiss", h.AdminDismiss)
}

// setupUIHandlers creates the UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot
// reloading. In production mode, templates come from the embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(userportal.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Authz:         services.Authz,
		Profiles:      services.Profiles,
		Admin:         services.Admin,
		CookieDomain:  services.CookieDomain,
		CountryPrefix: services.CountryPrefix,
		Logger:        services.Logger,
	}
}

// staticHandler serves /static/* assets.
// In dev mode, assets come from disk for hot reloading; otherwise from the
// embedded FS.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	staticSub, err := fs.Sub(userportal.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}
