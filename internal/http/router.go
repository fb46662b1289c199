package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rednote-ops/internal/handlers"
	"rednote-ops/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Library service.LibraryService
	Content service.ContentService
	Storage handlers.StorageProbe

	// Limits for the AI backed /api/content routes.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	libraryHandler := handlers.NewLibraryHandler(deps.Library)
	noteHandler := handlers.NewNoteHandler(deps.Library)
	contentHandler := handlers.NewContentHandler(deps.Content)
	healthHandler := handlers.NewHealthHandler(deps.Storage)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", libraryHandler.List)
			r.Post("/", libraryHandler.Save)
			r.Delete("/", libraryHandler.Clear)
			r.Post("/delete", libraryHandler.Delete)
			r.Post("/export", libraryHandler.Export)
			r.Get("/stats", libraryHandler.Stats)
			r.Method(http.MethodGet, "/{id}", noteHandler)
		})

		r.Route("/content", func(r chi.Router) {
			r.Use(RateLimit(deps.RateLimitRPS, deps.RateLimitBurst))
			r.Post("/parse", contentHandler.Parse)
			r.Post("/variations", contentHandler.Variations)
			r.Post("/audit", contentHandler.Audit)
			r.Post("/topics", contentHandler.Topics)
			r.Post("/batch", contentHandler.Batch)
			r.Post("/cover", contentHandler.Cover)
		})
	})

	return r
}
