// Package ui renders the server-side console: chat, query editor, inventory
// and the schema studio.
package ui

import (
	"log/slog"
	"net/http"
	"strconv"

	gomponents "maragu.dev/gomponents"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/chat"
	"datasync-console/internal/service/inventory"
	"datasync-console/internal/service/query"
	"datasync-console/internal/service/studio"
)

// Handler serves the /ui pages.
type Handler struct {
	Inventory  *inventory.Service
	Studio     *studio.Service
	Query      *query.Service
	Chat       *chat.Service
	Production bool
	Logger     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(inv *inventory.Service, st *studio.Service, q *query.Service, c *chat.Service, production bool, logger *slog.Logger) *Handler {
	return &Handler{
		Inventory:  inv,
		Studio:     st,
		Query:      q,
		Chat:       c,
		Production: production,
		Logger:     logger,
	}
}

func pageFromRequest(r *http.Request, defaultPageSize int) domain.PageRequest {
	maxResults := defaultPageSize
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxResults = parsed
		}
	}
	maxResults = max(1, min(maxResults, 200))
	return domain.PageRequest{
		MaxResults: maxResults,
		PageToken:  r.URL.Query().Get("page_token"),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
