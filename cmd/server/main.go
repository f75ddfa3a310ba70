package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/middleware"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Sentry if enabled
	if cfg.Sentry.Release == "" {
		cfg.Sentry.Release = "clientintake@" + appVersion
	}
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.Server.Env
	}
	sentryEnabled, err := middleware.InitSentry(cfg.Sentry)
	if err != nil {
		log.Error("failed to initialize Sentry", zap.Error(err))
	}
	if sentryEnabled {
		log.Info("Sentry initialized",
			zap.String("environment", cfg.Sentry.Environment),
			zap.String("release", cfg.Sentry.Release),
		)
		defer middleware.FlushSentry(5 * time.Second)
	}

	// Initialize dependencies
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := initDependencies(initCtx, cfg, log)
	cancelInit()
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	app := newApp(cfg, deps, log, sentryEnabled)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Info("starting server", zap.String("addr", addr), zap.String("version", appVersion))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

// newApp builds the Fiber app with global middleware and every route
func newApp(cfg *config.Config, deps *Dependencies, log *zap.Logger, sentryEnabled bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Client Intake API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.Upload.MaxBodyBytes,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler(log, sentryEnabled),
	})

	// Apply global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(log)).Handler())
	app.Use(middleware.RecoverWithSentry(log, sentryEnabled))
	app.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins)).Handler())
	app.Use(middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig()).Handler())

	registerRoutes(app, deps)

	return app
}

// errorHandler renders errors that reach Fiber unhandled: unmatched routes,
// oversized bodies and anything a handler returns instead of responding.
func errorHandler(log *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request error",
				zap.Int("status", code),
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   utils.StatusMessage(code),
			"message": message,
		})
	}
}
