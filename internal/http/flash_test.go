package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_RoundTrip(t *testing.T) {
	const msg = "OTP Verified! Your account is now active."

	setRec := httptest.NewRecorder()
	setFlash(setRec, "", msg)

	res := setRec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	require.Len(t, res.Cookies(), 1)
	cookie := res.Cookies()[0]
	assert.Equal(t, flashCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	// A following request carries the cookie; taking the flash returns the
	// message and expires the cookie.
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(cookie)
	takeRec := httptest.NewRecorder()

	assert.Equal(t, msg, takeFlash(takeRec, r, ""))

	takeRes := takeRec.Result()
	t.Cleanup(func() { _ = takeRes.Body.Close() })
	require.Len(t, takeRes.Cookies(), 1)
	assert.Negative(t, takeRes.Cookies()[0].MaxAge)
}

func TestTakeFlash_NoCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)

	assert.Empty(t, takeFlash(rec, r, ""))

	res := rec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	assert.Empty(t, res.Cookies(), "nothing to clear without a flash cookie")
}
