package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sellerverify/docs"
	"sellerverify/internal/config"
	"sellerverify/internal/database"
	"sellerverify/internal/database/migration"
	handlers "sellerverify/internal/http/handler"
	"sellerverify/internal/http/middleware"
	"sellerverify/internal/intake"
	"sellerverify/internal/logging"
	"sellerverify/internal/otel"
	"sellerverify/internal/repository/postgres"
	"sellerverify/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Seller Verification API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.Location())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// db stays nil in simulated mode; the readiness probe then reports healthy.
	var db *sql.DB
	var reviewIntake intake.ReviewIntake
	switch cfg.IntakeMode {
	case config.IntakePostgres:
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		reviewIntake = intake.NewRecorder(postgres.NewSubmissionPostgres(db), logger)
	case config.IntakeSimulated:
		reviewIntake = intake.NewSimulated(logger)
	default:
		logger.Fatal("unknown intake mode", zap.String("intake_mode", cfg.IntakeMode))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		logger.Fatal("failed to register service metrics", zap.Error(err))
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("failed to register http metrics", zap.Error(err))
	}

	svc := service.NewVerificationService(reviewIntake, cfg.Verification, metrics, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithServerName(cfg.AppHost)))
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, db, svc, reg)

	if cfg.SwaggerEnabled {
		// Swagger UI with dynamic host and scheme
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}

			docs.SwaggerInfo.Host = c.Get("Host")
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	addr := ":" + cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server_listening", zap.String("addr", addr), zap.String("intake_mode", cfg.IntakeMode))
		return app.Listen(addr)
	})
	g.Go(func() error {
		return service.RunSweeper(gctx, svc, cfg.Verification.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := app.ShutdownWithContext(sctx)
		svc.Shutdown()
		return errors.Join(err, shutdownTracing(sctx))
	})

	if err := g.Wait(); err != nil {
		logger.Error("server_stopped", zap.Error(err))
		return
	}
	logger.Info("server_stopped")
}
