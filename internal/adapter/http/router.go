package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sotopay/walletd/internal/adapter/http/handler"
	"github.com/sotopay/walletd/internal/adapter/http/middleware"
	"github.com/sotopay/walletd/internal/infrastructure/auth"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
	"github.com/sotopay/walletd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	BankHandler        *handler.BankHandler
	WebhookHandler     *handler.WebhookHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Metrics            *metrics.Metrics
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Gateway callback. The provider does not authenticate like our
		// clients do, so it stays outside the token-guarded group.
		r.Post("/webhook/paystack", cfg.WebhookHandler.HandleCallback)

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			// Wallet
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", cfg.WalletHandler.Get)
				r.Post("/pin", cfg.WalletHandler.SetupPin)
			})

			// Transactions
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", cfg.TransactionHandler.List)
				r.Post("/paymentlink", cfg.TransactionHandler.CreatePaymentLink)
				r.Post("/transfer", cfg.TransactionHandler.Transfer)
				r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
				r.Post("/withdraw/complete", cfg.TransactionHandler.CompleteWithdrawal)
				r.Get("/verify/{reference}", cfg.TransactionHandler.Verify)
			})

			// Banks
			r.Route("/banks", func(r chi.Router) {
				r.Get("/", cfg.BankHandler.List)
				r.Get("/verify", cfg.BankHandler.VerifyAccount)
			})
		})
	})

	return r
}
