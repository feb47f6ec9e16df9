package httpx

import (
	"net/http"
	"net/url"
)

// flashCookieName holds a one-shot notification shown on the next page render.
// Success messages survive the POST-redirect-GET hop through it.
const flashCookieName = "flash"

// setFlash stores a one-shot message for the next rendered page.
func setFlash(w http.ResponseWriter, domain, msg string) {
	if msg == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending message, if any, and clears the cookie.
func takeFlash(w http.ResponseWriter, r *http.Request, domain string) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
