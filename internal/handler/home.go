package handler

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]string{"Title": "Text Generator"}); err != nil {
		h.logger.Error("failed to render landing page", "error", err)
	}
}
