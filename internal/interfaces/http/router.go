package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	appledger "github.com/jhoicas/hotel-ops-api/internal/application/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
	"github.com/jhoicas/hotel-ops-api/pkg/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PINAuth    *auth.PINAuthUseCase
	Sessions   *auth.SessionUseCase
	AdminAuth  *auth.AdminAuthUseCase
	Events     *appledger.EventUseCase
	Bottleneck *appanalytics.BottleneckUseCase
	Report     *appanalytics.ReportUseCase
	Companies  repository.CompanyRepository
	PINLimiter *ratelimit.Limiter
	Metrics    *metrics.Metrics // opcional
	Logger     *logger.Logger
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	api := app.Group("/api")

	onPINReject := func() { deps.Metrics.PINLogin(metrics.LoginRateLimited) }
	requireSession := SessionMiddleware(deps.Sessions, log)

	// Auth de terminales (público, limitado por IP)
	authHandler := NewAuthHandler(deps.PINAuth, deps.Sessions, deps.AdminAuth, log, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/pin", RateLimit(deps.PINLimiter, "pin", log, onPINReject), authHandler.PINLogin)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", requireSession, authHandler.Session)

	// Consola de administración
	api.Post("/admin/auth/login", RateLimit(deps.PINLimiter, "admin", log, nil), authHandler.AdminLogin)

	// Ledger (requiere X-Session-Token)
	ledgerHandler := NewLedgerHandler(deps.Events, log, deps.Metrics)
	api.Group("/ledger", requireSession).Post("/events", ledgerHandler.AppendEvent)
	api.Group("/operations", requireSession).Post("/:operation", ledgerHandler.RecordOperation)

	// Dashboard (Bearer JWT de admin o supervisor, empresa activa)
	dashboardHandler := NewDashboardHandler(deps.Bottleneck, deps.Report, log)
	dashboard := api.Group("/dashboard",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleManager),
		RequireActiveCompany(deps.Companies, log),
	)
	dashboard.Get("/bottleneck", dashboardHandler.GetBottleneck)
	dashboard.Get("/bottleneck/report.pdf", dashboardHandler.GetBottleneckReport)
	dashboard.Get("/events", ledgerHandler.ListRecent)
}
