package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"diaryapi/docs"
	"diaryapi/internal/config"
	"diaryapi/internal/database"
	"diaryapi/internal/database/migration"
	handlers "diaryapi/internal/http/handler"
	"diaryapi/internal/http/middleware"
	"diaryapi/internal/logging"
	"diaryapi/internal/otel"
	"diaryapi/internal/repository"
	"diaryapi/internal/repository/memory"
	"diaryapi/internal/repository/postgres"
	"diaryapi/internal/service"
)

// @title Diary API
// @version 1.0
// @description CRUD service for personal diary entries.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	logger := logging.NewStdout(loc, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	repo, db, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	// Upload dates are calendar days in the configured zone.
	svc := service.NewDiaryEntryService(repo, func() time.Time { return time.Now().In(loc) })

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// A nil *sql.DB must not reach the health check as a non-nil Pinger.
	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	handlers.RegisterRoutes(app, pinger, svc, logger, cfg.APIPrefix)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		host := c.Get("Host")
		if host == "" {
			host = cfg.AppHost
		}
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_starting",
			zap.String("addr", addr),
			zap.String("storage_driver", cfg.StorageDriver),
			zap.String("api_prefix", cfg.APIPrefix),
		)
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server_failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("server_stopping", zap.Duration("grace", cfg.ShutdownTimeout()))
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
			logger.Error("server_shutdown_failed", zap.Error(err))
		}
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("tracing_shutdown_failed", zap.Error(err))
	}
	logger.Info("server_stopped")
}

// openRepository selects the entry store named by STORAGE_DRIVER.
// The returned *sql.DB is nil for the in-memory store.
func openRepository(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (repository.DiaryEntryRepository, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, entries are lost on restart")
		return memory.NewDiaryEntryMemory(), nil, nil
	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewDiaryEntryPostgres(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q, want %s or %s", cfg.StorageDriver, config.StoragePostgres, config.StorageMemory)
	}
}
