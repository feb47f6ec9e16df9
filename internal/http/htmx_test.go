package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHTMX(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	assert.False(t, IsHTMX(r))

	r.Header.Set("Hx-Request", "true")
	assert.True(t, IsHTMX(r))
	assert.True(t, WantsPartial(r))
}

func TestHTMXRedirect(t *testing.T) {
	rr := httptest.NewRecorder()
	HTMX(rr).Redirect("/login")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Hx-Redirect"))
}

func TestSetHXTrigger(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXTrigger(rr, "notice", map[string]string{"message": "saved"})
	assert.JSONEq(t, `{"notice":{"message":"saved"}}`, rr.Header().Get("Hx-Trigger"))

	rr = httptest.NewRecorder()
	SetHXTrigger(rr, "refresh", nil)
	assert.JSONEq(t, `{"refresh":true}`, rr.Header().Get("Hx-Trigger"))
}
