package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopublish-api/internal/application/auth"
	"github.com/jhoicas/autopublish-api/internal/application/usecase"
	"github.com/jhoicas/autopublish-api/pkg/config"
	"github.com/jhoicas/autopublish-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SiteUC      *usecase.SiteUseCase
	DashboardUC *usecase.DashboardUseCase
	Users       userCounter
	Metrics     *HTTPMetrics // nil = sin /metrics
	RateLimit   config.RateLimitConfig
	Log         *logger.Logger
	ServiceName string
	DevMode     bool
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := NewErrorWriter(log.Named("http"), deps.DevMode)

	app.Use(RequestLogger(log.Named("access")))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	health := NewHealthHandler(deps.ServiceName, deps.Users, errs)
	app.Get("/health", health.Health)
	app.Get("/health/db", health.Database)

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC, errs)

	// Auth: register y login públicos con límite por IP
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	limiter := RateLimit(deps.RateLimit.RequestsPerSecond, deps.RateLimit.Burst)
	authGroup.Post("/register", limiter, authHandler.Register)
	authGroup.Post("/login", limiter, authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Sites (protegido)
	sites := api.Group("/sites", requireAuth)
	siteHandler := NewSiteHandler(deps.SiteUC, errs)
	sites.Get("/", siteHandler.List)
	sites.Post("/", siteHandler.Create)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)

	// Dashboard (protegido)
	dashboard := api.Group("/dashboard", requireAuth)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
