package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/SscSPs/store_credit_app/cmd/docs"
	"github.com/SscSPs/store_credit_app/internal/core/services"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/handlers"
	"github.com/SscSPs/store_credit_app/internal/jobs"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/SscSPs/store_credit_app/internal/platform/cache"
	"github.com/SscSPs/store_credit_app/internal/platform/config"
	cacherepo "github.com/SscSPs/store_credit_app/internal/repositories/cache"
	"github.com/SscSPs/store_credit_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/store_credit_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// @title Store Credit Backend API
// @version 1.0
// @description Customer credit accounts, sales on credit and payments for a small store.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional: without it reports are computed on every request
	// and notifications are dropped.
	var (
		queue       portssvc.NotificationQueue
		totalsCache portsrepo.TotalsCache
	)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		totalsCache = cacherepo.NewRedisTotalsCache(redisClient, cfg.ReportCacheTTL)

		jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, jobs.NewMetrics(prometheus.DefaultRegisterer))
		defer jobClient.Close()
		queue = jobClient
		logger.Info("Redis connected; report cache and notification queue enabled.")
	} else {
		logger.Warn("REDIS_ADDR not set; report cache and notifications disabled.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, queue, totalsCache, cfg.ReportTimezone)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecurityHeaders(cfg.IsProduction),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(corsCfg))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
