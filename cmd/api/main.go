package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	appledger "github.com/jhoicas/hotel-ops-api/internal/application/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/hotel-ops-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/hotel-ops-api/internal/interfaces/http"
	"github.com/jhoicas/hotel-ops-api/pkg/config"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
	"github.com/jhoicas/hotel-ops-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: el login de consola quedará deshabilitado")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	sessionUC := auth.NewSessionUseCase(
		store.tx, store.sessions, store.employees, store.areas,
		auth.WithTTL(cfg.Session.TTL()),
	)
	pinUC := auth.NewPINAuthUseCase(store.employees, sessionUC)
	adminUC := auth.NewAdminAuthUseCase(store.employees, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	eventUC := appledger.NewEventUseCase(store.tx, store.catalog, store.events, log)
	bottleneckUC := appanalytics.NewBottleneckUseCase(store.sums, store.areas,
		appanalytics.WithLocation(cfg.App.Location()),
	)
	reportUC := appanalytics.NewReportUseCase(store.companies, bottleneckUC, infrapdf.NewMarotoPDFGenerator())

	limiterStore, closeLimiter := openLimiterStore(ctx, cfg, log)
	defer closeLimiter()
	pinLimiter := ratelimit.New(limiterStore, ratelimit.Policy{
		Limit:  cfg.RateLimit.PINLimit,
		Window: cfg.RateLimit.PINWindow(),
	})

	m := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,

		// Sin proxies de confianza c.IP() es la IP del socket; el header solo se lee si viene de uno de ellos.
		ProxyHeader:             cfg.HTTP.ProxyHeader,
		EnableTrustedProxyCheck: len(cfg.HTTP.TrustedProxies) > 0,
		TrustedProxies:          cfg.HTTP.TrustedProxies,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestTimeout(cfg.HTTP.RequestTimeout()))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Instrument())

	// Swagger UI en local: http://localhost:<port>/docs (solo si el JSON existe)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Hotel Ops API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		PINAuth:    pinUC,
		Sessions:   sessionUC,
		AdminAuth:  adminUC,
		Events:     eventUC,
		Bottleneck: bottleneckUC,
		Report:     reportUC,
		Companies:  store.companies,
		PINLimiter: pinLimiter,
		Metrics:    m,
		Logger:     log,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openLimiterStore elige el contador del limitador. Con Redis el límite se comparte entre réplicas;
// si Redis no responde al arrancar se sigue con él y el middleware deja pasar mientras falle.
func openLimiterStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (ratelimit.Store, func()) {
	if cfg.RateLimit.Backend != config.RateLimitRedis {
		return ratelimit.NewMemoryStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible al iniciar")
	}
	return ratelimit.NewRedisStore(client, cfg.App.Name+":ratelimit:"), func() { _ = client.Close() }
}
