package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial returns true when the handler should return only the main fragment (not full layout).
// Rule: partial for all HTMX requests, including history restores.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// SetHXRedirect instructs htmx to redirect the browser to the given URL.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// SetHXPushURL pushes the given URL into the browser history for the new content.
func SetHXPushURL(w http.ResponseWriter, url string) { w.Header().Set("Hx-Push-Url", url) }

// SetHXTrigger triggers a client-side event after swap with optional payload.
// It sets the Hx-Trigger response header as a JSON object: {"<event>": <payload>}.
// If payload is nil, the value true is used for the event.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	var value any = true
	if payload != nil {
		value = payload
	}
	m := map[string]any{event: value}
	b, err := json.Marshal(m)
	if err != nil {
		// Fall back to a boolean trigger if payload cannot be serialized
		w.Header().Set("Hx-Trigger", "{\""+event+"\":true}")
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect instructs htmx to redirect the browser to the given URL.
// It sets the HX-Redirect header and returns a 204 No Content status.
// The handler should return immediately after calling this method to avoid
// accidental writes that would be ignored.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger triggers a client-side event after swap with optional payload.
// This method is chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}
