// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/purpleshop/api/internal/admin"
	"github.com/purpleshop/api/internal/auth"
	"github.com/purpleshop/api/internal/category"
	"github.com/purpleshop/api/internal/config"
	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/favorite"
	"github.com/purpleshop/api/internal/health"
	"github.com/purpleshop/api/internal/middleware"
	"github.com/purpleshop/api/internal/product"
	"github.com/purpleshop/api/internal/review"
	"github.com/purpleshop/api/internal/server"
	"github.com/purpleshop/api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "HS256",
		"ttl", jwtManager.TokenTTL().String(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(db.DB, userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, jwtManager)
	authHandler := auth.NewHandler(authSvc)

	reviewRepo := review.NewRepository(db.DB)
	reviewSvc := review.NewService(db.DB, reviewRepo)
	reviewHandler := review.NewHandler(reviewSvc)

	productRepo := product.NewRepository(db.DB)
	productSvc := product.NewService(
		db.DB,
		productRepo,
		review.NewProductReviewSource(reviewRepo),
		logger,
	)
	productHandler := product.NewHandler(productSvc, cfg.Catalog)

	favoriteRepo := favorite.NewRepository(db.DB)
	favoriteSvc := favorite.NewService(db.DB, favoriteRepo)
	favoriteHandler := favorite.NewHandler(favoriteSvc, cfg.Catalog)

	categoryRepo := category.NewRepository(db.DB)
	categorySvc := category.NewService(
		categoryRepo,
		redis,
		cfg.Catalog.StatsCacheTTL,
		logger,
	)
	categoryHandler := category.NewHandler(categorySvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)
	adminOnly := middleware.RequireAdmin

	// Products and users are shared surfaces: listings, favorites and
	// reviews all hang off them, so the groups are assembled here.
	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		r.Route("/products", func(r chi.Router) {
			r.Get("/stats/summary", categoryHandler.Summary)
			productHandler.RegisterRoutes(r, authenticator)
			favoriteHandler.RegisterProductRoutes(r, authenticator)
			reviewHandler.RegisterProductRoutes(r, authenticator)
		})

		r.Route("/users", func(r chi.Router) {
			userHandler.RegisterRoutes(r, authenticator)
			productHandler.RegisterUserRoutes(r, optionalAuth)
			favoriteHandler.RegisterUserRoutes(r, authenticator)
		})

		categoryHandler.RegisterRoutes(r)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			adminHandler.RegisterRoutes(r)
			userHandler.RegisterAdminRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
