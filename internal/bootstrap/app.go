package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"readiness-backend/internal/catalog"
	"readiness-backend/internal/extract"
	"readiness-backend/internal/results"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/services/health"
	"readiness-backend/internal/sessions"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/server"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Scoring         *scoring.Client
	Redis           *redis.Client
	CatalogCache    catalog.Cache
	CatalogService  *catalog.Service
	SessionsRepo    *sessions.MemoryRepo
	SessionsService *sessions.Service
	Renderer        *results.Renderer
	Health          *health.Service
}

// Build validates cfg and wires every dependency, including the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	weights := scoring.DefaultWeights()
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("component weights: %w", err)
	}

	app := &App{
		Config:   cfg,
		Scoring:  scoring.NewClient(cfg.ScoringAPIURL, &http.Client{Timeout: cfg.ScoringTimeout()}),
		Renderer: results.NewRenderer(weights),
		Health:   health.NewService(),
	}

	if err := buildCatalog(app); err != nil {
		return nil, err
	}

	app.SessionsRepo = sessions.NewMemoryRepo(cfg.SessionTTL())
	app.SessionsService = &sessions.Service{
		Repo:                app.SessionsRepo,
		Scoring:             app.Scoring,
		Extractor:           extract.Local{},
		Renderer:            app.Renderer,
		SubmitExtractedText: cfg.ResumeSubmitExtractedText,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		SessionHandler: sessions.NewHandler(app.SessionsService, cfg.MaxUploadBytes),
		CatalogHandler: catalog.NewHandler(app.CatalogService),
		Health:         app.Health,
		RateLimiter:    middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":           cfg.Env,
		"scoring_url":   cfg.ScoringAPIURL,
		"catalog_cache": cfg.CatalogCache,
		"session_ttl":   cfg.SessionTTL().String(),
	})
	return app, nil
}

func buildCatalog(app *App) error {
	switch app.Config.CatalogCache {
	case config.CatalogCacheRedis:
		client, err := catalog.DialRedis(app.Config.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		app.Redis = client
		app.CatalogCache = catalog.NewRedisCache(client)
		app.Health.Register("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	default:
		app.CatalogCache = catalog.NewMemoryCache()
	}
	app.CatalogService = catalog.NewService(app.Scoring, app.CatalogCache, app.Config.CatalogTTL())
	return nil
}

// Close releases external connections.
func (a *App) Close() error {
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}
