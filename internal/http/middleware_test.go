package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/service"
)

type stubResolver struct {
	sess *domainauth.Session
	err  error
}

func (s *stubResolver) GetSession(context.Context, string) (*domainauth.Session, error) {
	return s.sess, s.err
}

type stubAuthorizer struct {
	decision service.Decision
}

func (s *stubAuthorizer) CanEnter(context.Context, string, *domainauth.Session) service.Decision {
	return s.decision
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithSession_ValidCookieInstallsSession(t *testing.T) {
	sess := testSession("u@example.com")
	resolver := &stubResolver{sess: &sess}

	var seen *domainauth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	WithSession(resolver)(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.NotNil(t, seen)
	assert.Equal(t, "u@example.com", seen.Email)
}

func TestWithSession_UnknownCookiePassesThroughUnauthenticated(t *testing.T) {
	resolver := &stubResolver{err: errors.New("session not found")}

	var seen *domainauth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	WithSession(resolver)(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.Nil(t, seen)
}

func TestGuard_DenyRedirects(t *testing.T) {
	guard := Guard(&stubAuthorizer{decision: service.Decision{RedirectTo: "/login"}})
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run on a denied route")
	})

	rr := httptest.NewRecorder()
	guard(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestGuard_DenyHTMXUsesHxRedirect(t *testing.T) {
	guard := Guard(&stubAuthorizer{decision: service.Decision{RedirectTo: "/login"}})
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run on a denied route")
	})

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Hx-Request", "true")
	rr := httptest.NewRecorder()
	guard(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Hx-Redirect"))
}

func TestGuard_AllowPassesThrough(t *testing.T) {
	guard := Guard(&stubAuthorizer{decision: service.Decision{Allow: true}})
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	guard(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.True(t, called)
}

func TestLogging_PreservesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	Logging(discardLogger())(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecover_PanicBecomes500(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Recover(discardLogger())(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
