package ui

import (
	"errors"
	"net/http"

	"datasync-console/internal/datasync"
	"datasync-console/internal/domain"
)

// classifyError maps a service error to a status code and page title.
func classifyError(err error) (int, string) {
	var (
		notFound    *domain.NotFoundError
		validation  *domain.ValidationError
		conflict    *domain.ConflictError
		unavailable *domain.UnavailableError
		apiErr      *datasync.APIError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, "Not Found"
	case errors.As(err, &validation):
		return http.StatusBadRequest, "Invalid Request"
	case errors.As(err, &conflict):
		return http.StatusConflict, "Conflict"
	case errors.As(err, &unavailable):
		return http.StatusBadGateway, "Backend Unavailable"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, "Request Failed"
		}
		return http.StatusBadGateway, "Backend Error"
	default:
		return http.StatusInternalServerError, "Unexpected Error"
	}
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, title := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), "ui request failed", "path", r.URL.Path, "error", err)
		message = "An unexpected error occurred while loading this page."
	}
	renderHTML(w, status, errorPage(title, message))
}
