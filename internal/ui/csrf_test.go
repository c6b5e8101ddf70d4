package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func postForm(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestRequireCSRF(t *testing.T) {
	tests := []struct {
		name   string
		req    func() *http.Request
		status int
	}{
		{
			name: "safe method passes without token",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/ui/query", nil)
			},
			status: http.StatusNoContent,
		},
		{
			name: "missing cookie",
			req: func() *http.Request {
				return postForm("/ui/query/run", url.Values{csrfFieldName: {"abc"}})
			},
			status: http.StatusForbidden,
		},
		{
			name: "mismatched form token",
			req: func() *http.Request {
				r := postForm("/ui/query/run", url.Values{csrfFieldName: {"abc"}})
				r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "xyz"})
				return r
			},
			status: http.StatusForbidden,
		},
		{
			name: "matching form token",
			req: func() *http.Request {
				r := postForm("/ui/query/run", url.Values{csrfFieldName: {"abc123"}, "sql": {"SELECT 1"}})
				r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc123"})
				return r
			},
			status: http.StatusNoContent,
		},
		{
			name: "matching header token",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/ui/inventory/sync", nil)
				r.Header.Set(csrfHeaderName, "abc123")
				r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc123"})
				return r
			},
			status: http.StatusNoContent,
		},
	}

	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.RequireCSRF(noContent()).ServeHTTP(rr, tt.req())
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestEnsureCSRFToken_SetsCookieOnce(t *testing.T) {
	h := &Handler{Production: true}

	rr := httptest.NewRecorder()
	h.EnsureCSRFToken(noContent()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui", nil))
	setCookie := rr.Header().Get("Set-Cookie")
	require.Contains(t, setCookie, csrfCookieName+"=")
	assert.Contains(t, setCookie, "Secure")
	assert.Contains(t, setCookie, "HttpOnly")

	r := httptest.NewRequest(http.MethodGet, "/ui", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "existing"})
	rr = httptest.NewRecorder()
	var field string
	h.EnsureCSRFToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		_ = csrfField(r).Render(&b)
		field = b.String()
	})).ServeHTTP(rr, r)
	assert.Empty(t, rr.Header().Get("Set-Cookie"))
	assert.Contains(t, field, `value="existing"`)
}
