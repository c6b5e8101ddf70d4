package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/query"
)

func targetOrDefault(target string) string {
	if query.ValidTarget(target) {
		return target
	}
	return domain.TargetGlobal
}

// QueryPage shows the editor. ?sql= prefills it, ?clear=1 empties it.
func (h *Handler) QueryPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sql := query.DefaultSQL
	switch {
	case q.Get("clear") != "":
		sql = ""
	case q.Has("sql"):
		sql = q.Get("sql")
	}
	renderHTML(w, http.StatusOK, queryPage(queryPageData{
		Target: targetOrDefault(q.Get("target")),
		SQL:    sql,
		CSRF:   csrfField(r),
	}))
}

// QueryRun executes the editor contents. Backend failures render inline.
func (h *Handler) QueryRun(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	d := queryPageData{
		Target: targetOrDefault(formString(r.PostForm, "target")),
		SQL:    formRaw(r.PostForm, "sql"),
		CSRF:   csrfField(r),
	}
	run, err := h.Query.Execute(r.Context(), d.Target, d.SQL)
	if run == nil && err != nil {
		// Rejected before reaching the backend.
		run = &domain.QueryRun{Target: d.Target, SQL: d.SQL, Err: err}
	}
	d.Run = run
	renderHTML(w, http.StatusOK, queryPage(d))
}

// QueryExportCSV runs the editor contents and downloads the result.
func (h *Handler) QueryExportCSV(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	target := targetOrDefault(formString(r.PostForm, "target"))
	var buf bytes.Buffer
	if err := h.Query.Export(r.Context(), &buf, target, formRaw(r.PostForm, "sql")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	filename := fmt.Sprintf("%s-query-%s.csv", target, time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// QueryGenerate asks the assistant for SQL and shows its reply next to the
// unchanged editor.
func (h *Handler) QueryGenerate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	d := queryPageData{
		Target: targetOrDefault(formString(r.PostForm, "target")),
		SQL:    formRaw(r.PostForm, "sql"),
		Prompt: formString(r.PostForm, "prompt"),
		CSRF:   csrfField(r),
	}
	resp, err := h.Query.Generate(r.Context(), d.Prompt, nil)
	if err != nil {
		status, _ := classifyError(err)
		if status == http.StatusBadRequest {
			h.renderServiceError(w, r, err)
			return
		}
		h.Logger.WarnContext(r.Context(), "query generation failed", "error", err)
		d.AssistantErr = err
	}
	d.Generated = resp
	renderHTML(w, http.StatusOK, queryPage(d))
}

// QueryHistory lists recorded runs.
func (h *Handler) QueryHistory(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r, 50)
	target := r.URL.Query().Get("target")
	entries, total, err := h.Query.History(r.Context(), target, page)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, historyPage(historyPageData{
		Entries: entries,
		Total:   total,
		Target:  target,
		Page:    page,
		CSRF:    csrfField(r),
	}))
}

// QueryHistoryClear deletes all history.
func (h *Handler) QueryHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := h.Query.ClearHistory(r.Context()); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui/query/history")
}
