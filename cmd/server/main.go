package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/sotopay/walletd/internal/adapter/gateway/paystack"
	httpAdapter "github.com/sotopay/walletd/internal/adapter/http"
	"github.com/sotopay/walletd/internal/adapter/http/handler"
	apimiddleware "github.com/sotopay/walletd/internal/adapter/http/middleware"
	postgresRepo "github.com/sotopay/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/sotopay/walletd/internal/adapter/repository/redis"
	"github.com/sotopay/walletd/internal/infrastructure/auth"
	"github.com/sotopay/walletd/internal/infrastructure/config"
	"github.com/sotopay/walletd/internal/infrastructure/logger"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
	"github.com/sotopay/walletd/internal/infrastructure/postgres"
	"github.com/sotopay/walletd/internal/infrastructure/redis"
	"github.com/sotopay/walletd/internal/infrastructure/reference"
	"github.com/sotopay/walletd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Metrics
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	pinRepo := postgresRepo.NewPinRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	refGen := reference.NewGenerator()

	// Payment gateway, with the bank directory served from cache
	gateway := paystack.NewCachingClient(
		paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.GatewayTimeout, appLogger),
		cache,
	)

	// Initialize use cases
	balance := usecase.NewBalanceMutator(walletRepo)
	userUC := usecase.NewUserUseCase(txManager, userRepo, walletRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txManager, txnRepo, pinRepo, balance, gateway, refGen, idGen, retrier, m)
	webhookUC := usecase.NewWebhookUseCase(txManager, txnRepo, balance, m)

	// Authentication
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	walletHandler := handler.NewWalletHandler(txnUC)
	transactionHandler := handler.NewTransactionHandler(txnUC, userUC)
	bankHandler := handler.NewBankHandler(txnUC)
	webhookHandler := handler.NewWebhookHandler(webhookUC, m, appLogger)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		BankHandler:        bankHandler,
		WebhookHandler:     webhookHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Metrics:            m,
		RateLimiter:        apimiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
