package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"
)

// pathParam returns a decoded chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// StudioPage renders the schema studio tab named by ?tab=.
func (h *Handler) StudioPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch q.Get("tab") {
	case tabGlobal:
		views, err := h.Studio.GlobalTables(r.Context())
		if err != nil {
			h.Logger.WarnContext(r.Context(), "list global tables failed", "error", err)
		}
		renderHTML(w, http.StatusOK, globalTab(views, err, csrfField(r)))
	case tabRelations:
		h.renderRelationsTab(w, r, http.StatusOK, relationsTabData{
			Form: relationFormState{
				RelationType: domain.RelationJoin,
				Left:         studio.SideSelection{SourceType: domain.SourcePhysical},
				Right:        studio.SideSelection{SourceType: domain.SourcePhysical},
			},
		})
	default:
		req := studio.BrowseRequest{
			Catalog: strings.TrimSpace(q.Get("catalog")),
			Schema:  strings.TrimSpace(q.Get("schema")),
			Search:  strings.TrimSpace(q.Get("search")),
		}
		renderHTML(w, http.StatusOK, sourcesTab(req, h.Studio.Browse(r.Context(), req)))
	}
}

// renderRelationsTab loads the relation list, the column relationships and
// the form options for d.Form, then renders the relations tab.
func (h *Handler) renderRelationsTab(w http.ResponseWriter, r *http.Request, status int, d relationsTabData) {
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		d.Relations, d.RelationsErr = h.Studio.Relations(gctx)
		return nil
	})
	g.Go(func() error {
		d.Relationships, d.RelshipsErr = h.Studio.Relationships(gctx)
		return nil
	})
	g.Go(func() error {
		d.Options = h.Studio.FormOptions(gctx, d.Form.Left, d.Form.Right)
		return nil
	})
	_ = g.Wait()

	d.Form.Left = d.Options.Left.Selection
	d.Form.Right = d.Options.Right.Selection
	d.CSRF = csrfField(r)
	renderHTML(w, status, relationsTab(d))
}

func (h *Handler) backToGlobal(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/ui/studio?tab="+tabGlobal)
}

// GlobalTableCreate adds a global table.
func (h *Handler) GlobalTableCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	err := h.Studio.CreateGlobalTable(r.Context(), domain.GlobalTable{
		Name:        formString(r.PostForm, "name"),
		Description: formString(r.PostForm, "description"),
	})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

// GlobalTableDelete removes a global table.
func (h *Handler) GlobalTableDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Studio.DeleteGlobalTable(r.Context(), pathParam(r, "table")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

// GlobalColumnCreate adds a column to a global table.
func (h *Handler) GlobalColumnCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	err := h.Studio.CreateGlobalColumn(r.Context(), domain.GlobalColumn{
		GlobalTableName: pathParam(r, "table"),
		Name:            formString(r.PostForm, "name"),
		DataType:        formString(r.PostForm, "data_type"),
		Description:     formString(r.PostForm, "description"),
	})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

// GlobalColumnDelete removes a global column.
func (h *Handler) GlobalColumnDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Studio.DeleteGlobalColumn(r.Context(), pathParam(r, "table"), pathParam(r, "column")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

func tableMappingFromForm(r *http.Request) domain.TableMapping {
	return domain.TableMapping{
		GlobalTableName: pathParam(r, "table"),
		CatalogName:     formString(r.PostForm, "catalog"),
		SchemaName:      formString(r.PostForm, "schema"),
		TableName:       formString(r.PostForm, "table"),
	}
}

// TableMappingCreate maps a physical table to a global table.
func (h *Handler) TableMappingCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	if err := h.Studio.CreateTableMapping(r.Context(), tableMappingFromForm(r)); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

// TableMappingDelete removes a table mapping.
func (h *Handler) TableMappingDelete(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	if err := h.Studio.DeleteTableMapping(r.Context(), tableMappingFromForm(r)); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToGlobal(w, r)
}

// GlobalTablePage shows one global table with its columns and mappings.
func (h *Handler) GlobalTablePage(w http.ResponseWriter, r *http.Request) {
	view, err := h.Studio.GlobalTable(r.Context(), pathParam(r, "table"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, globalTablePage(view, csrfField(r)))
}

// ColumnMappingsPage lists the physical columns mapped to a global column.
func (h *Handler) ColumnMappingsPage(w http.ResponseWriter, r *http.Request) {
	table, column := pathParam(r, "table"), pathParam(r, "column")
	mappings, err := h.Studio.ColumnMappings(r.Context(), table, column)
	if err != nil {
		h.Logger.WarnContext(r.Context(), "list column mappings failed", "table", table, "column", column, "error", err)
	}
	renderHTML(w, http.StatusOK, columnMappingsPage(table, column, mappings, err, csrfField(r)))
}

func columnMappingFromForm(r *http.Request) domain.ColumnMapping {
	return domain.ColumnMapping{
		GlobalTableName:  pathParam(r, "table"),
		GlobalColumnName: pathParam(r, "column"),
		CatalogName:      formString(r.PostForm, "catalog"),
		SchemaName:       formString(r.PostForm, "schema"),
		TableName:        formString(r.PostForm, "table"),
		ColumnName:       formString(r.PostForm, "column"),
	}
}

func (h *Handler) backToColumnMappings(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, globalColumnPath(pathParam(r, "table"), pathParam(r, "column"))+"/mappings")
}

// ColumnMappingCreate maps a physical column to a global column.
func (h *Handler) ColumnMappingCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	if err := h.Studio.CreateColumnMapping(r.Context(), columnMappingFromForm(r)); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToColumnMappings(w, r)
}

// ColumnMappingDelete removes a column mapping.
func (h *Handler) ColumnMappingDelete(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	if err := h.Studio.DeleteColumnMapping(r.Context(), columnMappingFromForm(r)); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.backToColumnMappings(w, r)
}
