package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/catalog"
	"readiness-backend/internal/services/health"
	"readiness-backend/internal/sessions"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupScoring = "SCORING"
)

// RouterDeps lists the handlers mounted by NewRouter.
type RouterDeps struct {
	Config         config.Config
	SessionHandler *sessions.Handler
	CatalogHandler *catalog.Handler
	Health         *health.Service
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})

	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: 20, Burst: 60},
			rateGroupScoring: {Rate: 0.5, Burst: 10},
		},
	}))

	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}

	return r
}

// rateGroupFor puts routes that call the scoring service into their own,
// stricter bucket.
func rateGroupFor(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/sessions/:id/submit",
		"/api/v1/sessions/:id/certifications/scan",
		"/api/v1/sessions/:id/resume/scan",
		"/api/v1/sessions/:id/resume/score",
		"/api/v1/sessions/:id/preview/:component":
		return rateGroupScoring
	default:
		return rateGroupDefault
	}
}
