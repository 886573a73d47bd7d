package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-website-backend/config"
	_ "go-website-backend/docs" // Important for Swagger
	v1 "go-website-backend/internal/delivery/http/v1"
	"go-website-backend/internal/domain"
	"go-website-backend/internal/repository/memory"
	"go-website-backend/internal/repository/postgres"
	"go-website-backend/internal/usecase"
	"go-website-backend/pkg/captcha"
	"go-website-backend/pkg/database"
	"go-website-backend/pkg/email"
	"go-website-backend/pkg/logger"
	"go-website-backend/pkg/metrics"
	"go-website-backend/pkg/ratelimit"
	redisclient "go-website-backend/pkg/redis"
	"go-website-backend/pkg/security"
	"go-website-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title           Website Forms Backend API
// @version         1.0
// @description     Contact, newsletter and registration endpoints for a marketing site.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zapLogger.Info("Starting website backend", zap.String("port", cfg.Port))

	secLogger := security.NewSecurityLogger(zapLogger)
	defer func() { _ = secLogger.Sync() }()
	m := metrics.New()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Rate Limiter (Redis when configured, in-memory otherwise)
	redisClient := connectRedis(ctx, cfg, zapLogger)
	limiter := ratelimit.New(redisClient, zapLogger, ratelimit.WithMaxKeys(cfg.RateLimitMaxKeys))
	if mem, ok := limiter.(*ratelimit.MemoryLimiter); ok {
		mem.StartSweeper(ctx, cfg.RateLimitSweep, time.Hour)
	}

	// 4. Setup Repositories
	userRepo, dbPool := setupUserRepository(ctx, cfg, zapLogger)

	// 5. Setup Email Service
	sender, from := email.NewSender(cfg, zapLogger)
	mailer := email.NewDispatcher(sender, from, zapLogger, m)
	if mailer.Backend() == "log" {
		zapLogger.Warn("No email provider configured - messages will only be logged")
	}

	// 6. Setup UseCases
	verifier := captcha.NewTurnstileVerifier(cfg.TurnstileSecret, zapLogger, captcha.WithVerifyURL(cfg.TurnstileVerifyURL))
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	contactUC := usecase.NewContactUsecase(mailer, verifier, cfg.ContactEmailTo, secLogger, m, zapLogger)
	newsletterUC := usecase.NewNewsletterUsecase(mailer, cfg.ContactEmailTo, zapLogger)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, secLogger)
	errorReportUC := usecase.NewErrorReportUsecase(zapLogger)
	healthUC := usecase.NewHealthUsecase(redisClient, zapLogger)

	// 7. Setup Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:     contactUC,
		NewsletterUC:  newsletterUC,
		AuthUC:        authUC,
		ErrorReportUC: errorReportUC,
		HealthUC:      healthUC,
		Limiter:       limiter,
		Validate:      validation.New(),
		SecLogger:     secLogger,
		Metrics:       m,
		Logger:        zapLogger,
		Config:        cfg,
	})
	if err != nil {
		zapLogger.Fatal("Failed to build router", zap.Error(err))
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if dbPool != nil {
		dbPool.Close()
	}

	zapLogger.Info("Server exiting")
}

func connectRedis(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) *redis.Client {
	client, err := redisclient.NewClient(ctx, redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if errors.Is(err, redisclient.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		zapLogger.Error("Redis unavailable, falling back to in-memory rate limiting", zap.Error(err))
		return nil
	}
	zapLogger.Info("Redis connection established")
	return client
}

func setupUserRepository(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (domain.UserRepository, *pgxpool.Pool) {
	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, zapLogger)
	if errors.Is(err, database.ErrNotConfigured) {
		zapLogger.Warn("DATABASE_URL not set - registered users are kept in memory")
		return memory.NewUserRepository(), nil
	}
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		zapLogger.Fatal("Failed to apply schema", zap.Error(err))
	}
	return postgres.NewUserRepository(pool), pool
}
