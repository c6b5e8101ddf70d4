package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasync-console/internal/ui/assets"
)

// MountRoutes registers the console pages on r, which is expected to be
// mounted at /ui.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.EnsureCSRFToken)
		r.Use(h.RequireCSRF)

		r.Get("/", h.ChatIndex)
		r.Post("/chat", h.ChatNewThread)
		r.Get("/chat/{threadID}", h.ChatThread)
		r.Post("/chat/{threadID}/messages", h.ChatSend)
		r.Post("/chat/{threadID}/delete", h.ChatDeleteThread)

		r.Get("/query", h.QueryPage)
		r.Post("/query/run", h.QueryRun)
		r.Post("/query/export.csv", h.QueryExportCSV)
		r.Post("/query/generate", h.QueryGenerate)
		r.Get("/query/history", h.QueryHistory)
		r.Post("/query/history/clear", h.QueryHistoryClear)

		r.Get("/inventory", h.InventoryPage)
		r.Post("/inventory/sync", h.InventorySync)

		r.Get("/studio", h.StudioPage)
		r.Post("/studio/global/tables", h.GlobalTableCreate)
		r.Get("/studio/global/tables/{table}", h.GlobalTablePage)
		r.Post("/studio/global/tables/{table}/delete", h.GlobalTableDelete)
		r.Post("/studio/global/tables/{table}/columns", h.GlobalColumnCreate)
		r.Post("/studio/global/tables/{table}/columns/{column}/delete", h.GlobalColumnDelete)
		r.Post("/studio/global/tables/{table}/mappings", h.TableMappingCreate)
		r.Post("/studio/global/tables/{table}/mappings/delete", h.TableMappingDelete)
		r.Get("/studio/global/tables/{table}/columns/{column}/mappings", h.ColumnMappingsPage)
		r.Post("/studio/global/tables/{table}/columns/{column}/mappings", h.ColumnMappingCreate)
		r.Post("/studio/global/tables/{table}/columns/{column}/mappings/delete", h.ColumnMappingDelete)
		r.Post("/studio/relations/form", h.RelationForm)
		r.Post("/studio/relations/auto-match", h.RelationAutoMatch)
		r.Get("/studio/relations/{relationID}", h.RelationDetail)
		r.Post("/studio/relations/{relationID}/delete", h.RelationDelete)
		r.Post("/studio/relationships", h.RelationshipCreate)
		r.Post("/studio/relationships/{relationshipID}/delete", h.RelationshipDelete)
	})
}
