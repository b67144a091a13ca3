package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/handler"
	"github.com/iliyamo/luxury-estate-api/internal/middleware"
	"github.com/iliyamo/luxury-estate-api/internal/utils"
)

// NewServer returns an Echo instance with the shared middleware stack:
// panic recovery, request ids, zap request logging and permissive CORS
// for the marketing site.
func NewServer(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
	}))
	return e
}

// RegisterRoutes registers routes that do not depend on any store: the
// landing banner and the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the read-only project catalog. The cache
// middleware only wraps these routes; lead data is never cached.
func RegisterPublic(e *echo.Echo, p *handler.ProjectHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api/projects", cache)
	g.GET("", p.ListProjects)
	g.GET("/:id", p.GetProject)
}

// LeadRoutesConfig controls how lead routes are guarded.
type LeadRoutesConfig struct {
	RequireAdmin bool   // guard GET /api/leads with an admin token
	JWTSecret    string // secret admin tokens are verified with
}

// RegisterLeads registers lead submission and listing. Submissions pass
// through the rate limiter; listing is optionally restricted to admins.
func RegisterLeads(e *echo.Echo, l *handler.LeadHandler, limiter echo.MiddlewareFunc, cfg LeadRoutesConfig) {
	e.POST("/api/leads", l.CreateLead, limiter)

	var guards []echo.MiddlewareFunc
	if cfg.RequireAdmin {
		guards = append(guards,
			middleware.JWTAuth(cfg.JWTSecret),
			middleware.RequireRole(utils.RoleAdmin),
		)
	}
	e.GET("/api/leads", l.ListLeads, guards...)
}

// RegisterDiagnostics registers the database connectivity report.
func RegisterDiagnostics(e *echo.Echo, d *handler.DiagnosticsHandler) {
	e.GET("/test", d.TestDatabase)
}

// RegisterAuth registers the admin login route behind the rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/admin/login", a.Login, limiter)
}
