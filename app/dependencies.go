package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/astoria-research/astoria/auth"
	"github.com/astoria-research/astoria/config"
	"github.com/astoria-research/astoria/handlers"
	"github.com/astoria-research/astoria/middleware"
	"github.com/astoria-research/astoria/repositories"
	"github.com/astoria-research/astoria/repositories/postgres"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Documents repositories.DocumentRepository
	Ships     repositories.ShipRepository
	Voyages   repositories.VoyageRepository
	Ingestion repositories.IngestionRepository

	// Auth
	Authenticator  *auth.Authenticator
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	HealthHandler  *handlers.HealthHandler
	QueryHandler   *handlers.QueryHandler
	SourcesHandler *handlers.SourcesHandler
	ExploreHandler *handlers.ExploreHandler
	IngestHandler  *handlers.IngestHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initAuth(cfg)
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func (d *Dependencies) initDatabase(cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}
	d.DB = db
	return nil
}

func (d *Dependencies) initRepositories() {
	d.Documents = postgres.NewDocumentRepository(d.DB, d.Logger)
	d.Ships = postgres.NewShipRepository(d.DB, d.Logger)
	d.Voyages = postgres.NewVoyageRepository(d.DB, d.Logger)
	d.Ingestion = postgres.NewIngestionRepository(d.DB, d.Logger)

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	httpClient := &http.Client{Timeout: cfg.Supabase.FetchTimeout}
	keys := auth.NewKeySetCache(httpClient, d.Logger)
	verifier := auth.NewTokenVerifier(cfg.Supabase.JWTSecret, cfg.Supabase.URL, keys, d.Logger)

	d.Authenticator = auth.NewAuthenticator(verifier, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Authenticator, d.Logger)

	if cfg.Supabase.JWTSecret == "" {
		d.Logger.Warn("no JWT secret configured, tokens verified against the published key set only")
	}
	d.Logger.Info("authentication initialized", zap.String("provider", cfg.Supabase.URL))
}

func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.HealthHandler = handlers.NewHealthHandler(cfg, d.DB, d.Logger)
	d.QueryHandler = handlers.NewQueryHandler(d.Logger)
	d.SourcesHandler = handlers.NewSourcesHandler(d.Documents, d.Logger)
	d.ExploreHandler = handlers.NewExploreHandler(d.Ships, d.Voyages, d.Logger)
	d.IngestHandler = handlers.NewIngestHandler(d.Ingestion, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}
