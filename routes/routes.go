package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/astoria-research/astoria/app"
	"github.com/astoria-research/astoria/auth"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", deps.HealthHandler.HandleHealth)

		// Natural language queries (require authentication)
		r.Route("/query", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/", deps.QueryHandler.HandleSubmit)
		})

		// Source documents
		r.Route("/sources", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/", deps.SourcesHandler.HandleList)
			r.Get("/{id}", deps.SourcesHandler.HandleGet)
		})

		// Direct database browsing
		r.Route("/explore", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/ships", deps.ExploreHandler.HandleListShips)
			r.Get("/ships/{id}", deps.ExploreHandler.HandleGetShip)
			r.Get("/voyages", deps.ExploreHandler.HandleListVoyages)
		})

		// Ingestion management (require admin role)
		r.Route("/ingest", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireRole(auth.RoleAdmin))
			r.Post("/trigger", deps.IngestHandler.HandleTrigger)
			r.Get("/status/{run_id}", deps.IngestHandler.HandleStatus)
			r.Get("/sources", deps.IngestHandler.HandleListSources)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
