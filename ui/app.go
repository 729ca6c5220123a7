package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pricelens/app"
	"pricelens/domain/pricelist"
	"pricelens/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router         *chi.Mux
	service        *app.CompareService
	templates      *template.Template
	maxUploadBytes int64
}

// NewApp creates a new UI application
func NewApp(cfg *config.Config, service *app.CompareService) (*App, error) {
	funcMap := template.FuncMap{
		"money": func(v *float64) string {
			if v == nil {
				return "—"
			}
			return fmt.Sprintf("$%.2f", *v)
		},
		"pct": func(v *float64) string {
			if v == nil {
				return "—"
			}
			return fmt.Sprintf("%.2f%%", *v)
		},
		"deltaClass": func(v *float64) string {
			switch {
			case v == nil || *v == 0:
				return "delta-flat"
			case *v > 0:
				return "delta-up"
			default:
				return "delta-down"
			}
		},
		"estado": func(p pricelist.Presence) string {
			switch p {
			case pricelist.PresenceBoth:
				return "En ambos"
			case pricelist.PresenceOnlyA:
				return "Solo en A"
			default:
				return "Solo en B"
			}
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:         chi.NewRouter(),
		service:        service,
		templates:      templates,
		maxUploadBytes: cfg.Upload.MaxFileSizeBytes(),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/compare", a.handleCompare)
	a.router.Post("/compare/report", a.handleCompareReport)

	// API endpoint for tooling
	a.router.Post("/api/compare", a.handleCompareJSON)
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	log.Printf("Starting PriceLens UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// ServeHTTP makes App mountable and testable as a plain http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
