package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/config"
	"github.com/iliyamo/luxury-estate-api/internal/handler"
	"github.com/iliyamo/luxury-estate-api/internal/middleware"
)

// LeadBackend is the lead store plus the introspection the diagnostic
// route needs. repository.LeadRepo satisfies it.
type LeadBackend interface {
	handler.LeadStore
	handler.DatabaseInspector
}

// Deps are the collaborators the HTTP surface is built from. Redis may be
// nil, in which case caching and rate limiting are pass-throughs.
type Deps struct {
	Projects  handler.ProjectStore
	Leads     LeadBackend
	Events    handler.LeadEventPublisher
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
}

// Setup builds the complete Echo server for cfg.
func Setup(cfg config.Config, d Deps) *echo.Echo {
	e := NewServer(d.Logger)

	cache := middleware.NewRedisCache(d.Cache, d.Redis, d.Logger)
	limiter := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger)

	RegisterRoutes(e)
	RegisterPublic(e, handler.NewProjectHandler(d.Projects, d.Logger), cache)
	RegisterLeads(e, handler.NewLeadHandler(d.Leads, d.Projects, d.Events, d.Logger), limiter, LeadRoutesConfig{
		RequireAdmin: cfg.LeadsRequireAdmin,
		JWTSecret:    cfg.JWTSecret,
	})
	RegisterDiagnostics(e, &handler.DiagnosticsHandler{
		DB:      d.Leads,
		URLSet:  cfg.DatabaseURL != "",
		NameSet: cfg.DatabaseName != "",
		Logger:  d.Logger,
	})
	RegisterAuth(e, handler.NewAuthHandler(cfg, d.Logger), limiter)
	return e
}
