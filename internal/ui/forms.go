package ui

import (
	"net/http"
	"net/url"
	"strings"
)

func formString(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// formRaw keeps surrounding whitespace, for SQL and chat text.
func formRaw(values url.Values, key string) string {
	return values.Get(key)
}

func parseFormOrRenderBadRequest(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "The submitted form could not be read."))
		return false
	}
	return true
}
