package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFull_WrapsContentInLayout(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return
	}

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	data := NewTemplateData(r, loginMeta()).Build()

	rr := httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rr, r, data))

	body := rr.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "<title>Login")
	assert.Contains(t, body, `action="/login"`)
}

func TestRenderPartial_OmitsLayout(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return
	}

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	data := NewTemplateData(r, loginMeta()).Build()

	rr := httptest.NewRecorder()
	require.NoError(t, tr.RenderPartial(rr, r, data))

	body := rr.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `action="/login"`)
}

func TestRenderSection_DispatchesEveryPage(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return
	}

	for page := range ContentTemplateMap() {
		t.Run(page, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/"+page, nil)
			meta := PageMeta{Title: page, PageTitle: page, CurrentPage: page}
			data := NewTemplateData(r, meta).Build()

			rr := httptest.NewRecorder()
			require.NoError(t, tr.RenderPartial(rr, r, data))
			assert.NotEmpty(t, strings.TrimSpace(rr.Body.String()))
		})
	}
}
