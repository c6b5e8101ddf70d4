package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Double-submit token: the cookie value must be echoed in the form field or
// header on every unsafe request.
const (
	csrfCookieName = "console_csrf"
	csrfFieldName  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

type csrfContextKey struct{}

// EnsureCSRFToken issues the token cookie on first visit and exposes the
// token to page rendering.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := readCSRFCookie(r)
		if token == "" {
			token = randomToken(32)
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/ui",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfContextKey{}, token)))
	})
}

// RequireCSRF rejects unsafe requests whose submitted token does not match
// the cookie.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := readCSRFCookie(r)
		if cookieToken == "" {
			renderHTML(w, http.StatusForbidden, errorPage("Request Rejected", "Missing CSRF cookie. Reload the page and try again."))
			return
		}
		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submittedCSRFToken(r))) != 1 {
			renderHTML(w, http.StatusForbidden, errorPage("Request Rejected", "Invalid or missing CSRF token."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func submittedCSRFToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(csrfHeaderName)); t != "" {
		return t
	}
	_ = r.ParseForm()
	return strings.TrimSpace(r.PostForm.Get(csrfFieldName))
}

// csrfField is the hidden input every POST form carries.
func csrfField(r *http.Request) gomponents.Node {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	if token == "" {
		token = readCSRFCookie(r)
	}
	return html.Input(html.Type("hidden"), html.Name(csrfFieldName), html.Value(token))
}

func readCSRFCookie(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func randomToken(size int) string {
	b := make([]byte, max(size, 16))
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
