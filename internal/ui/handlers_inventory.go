package ui

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/inventory"
)

// InventoryPage lists catalogs and the selected catalog's schemas.
func (h *Handler) InventoryPage(w http.ResponseWriter, r *http.Request) {
	selected := strings.TrimSpace(r.URL.Query().Get("catalog"))

	var (
		ov        *inventory.Overview
		health    *domain.HealthStatus
		healthErr error
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		ov = h.Inventory.Overview(gctx, selected)
		return nil
	})
	g.Go(func() error {
		health, healthErr = h.Inventory.Health(gctx)
		return nil
	})
	_ = g.Wait()

	renderHTML(w, http.StatusOK, inventoryPage(inventoryPageData{
		Overview:  ov,
		Health:    health,
		HealthErr: healthErr,
		CSRF:      csrfField(r),
	}))
}

// InventorySync runs a metadata sync; the outcome shows as a banner.
func (h *Handler) InventorySync(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	h.Inventory.Sync(r.Context())

	to := "/ui/inventory"
	if c := formString(r.PostForm, "catalog"); c != "" {
		to += "?catalog=" + url.QueryEscape(c)
	}
	redirect(w, r, to)
}
