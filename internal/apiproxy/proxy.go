// Package apiproxy forwards /api requests to the DataSync backend so browser
// and script clients can keep using relative /api paths.
package apiproxy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/cors"

	"datasync-console/internal/middleware"
)

// Prefix is the path the proxy is mounted under.
const Prefix = "/api"

// Options configures the proxy.
type Options struct {
	// AllowedOrigins for CORS. Empty disables CORS headers.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// New returns a handler that strips Prefix and forwards to backend. Backend
// failures become 502 with the error text as the body.
func New(backend string, opts Options) (http.Handler, error) {
	target, err := url.Parse(backend)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, errors.New("backend url must be absolute")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if id := middleware.RequestIDFromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set(middleware.RequestIDHeader, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "api proxy failed", "path", r.URL.Path, "error", err)
			http.Error(w, "backend unreachable", http.StatusBadGateway)
		},
	}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasPrefix(r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = strip(r.URL.Path)
		r2.URL.RawPath = ""
		if r.URL.RawPath != "" {
			r2.URL.RawPath = strip(r.URL.RawPath)
		}
		proxy.ServeHTTP(w, r2)
	})

	if len(opts.AllowedOrigins) > 0 {
		h = cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		})(h)
	}
	return h, nil
}

func hasPrefix(p string) bool {
	return p == Prefix || strings.HasPrefix(p, Prefix+"/")
}

func strip(p string) string {
	rest := strings.TrimPrefix(p, Prefix)
	if rest == "" {
		return "/"
	}
	return rest
}
