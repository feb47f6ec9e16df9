package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/ports"
	"github.com/caseworks/user-portal/internal/service"
)

// testCountryPrefix is the mobile prefix handlers are built with in tests.
const testCountryPrefix = "+91"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the
// test if templates are not available on disk.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// CreateUIHandlersForTest builds UIHandlers over real services backed by the
// given directory and session store.
func CreateUIHandlersForTest(t *testing.T, dir ports.UserDirectory, sessions ports.SessionStore) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	return &UIHandlers{
		T:             tr,
		Auth:          service.NewAuthService(service.AuthServiceOptions{Directory: dir, Sessions: sessions}),
		Authz:         service.NewAuthorizer(service.AuthorizerOptions{Directory: dir}),
		Profiles:      service.NewProfileService(service.ProfileServiceOptions{Directory: dir}),
		Admin:         service.NewAdminService(service.AdminServiceOptions{Directory: dir}),
		CountryPrefix: testCountryPrefix,
	}
}

// formRequest builds a POST-style request with URL-encoded form data.
func formRequest(method, target string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// withTestSession installs a session in the request context the way the
// session middleware would.
func withTestSession(r *http.Request, sess *domainauth.Session) *http.Request {
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}

// readBody drains and closes a response body.
func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer func() { _ = res.Body.Close() }()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(b)
}
