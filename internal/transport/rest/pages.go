package rest

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var pageFS embed.FS

// PageHandler serves the server-rendered HTML pages.
type PageHandler struct {
	tmpl *template.Template
	log  *slog.Logger
}

// NewPageHandler parses the embedded page templates.
func NewPageHandler(logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(pageFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{tmpl: tmpl, log: logger.With("handler", "pages")}, nil
}

// Index handles GET / and GET /home.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html")
}

// Login handles GET /login.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html")
}

// Register handles GET /register.
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html")
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, nil); err != nil {
		h.log.ErrorContext(r.Context(), "render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
	}
}
