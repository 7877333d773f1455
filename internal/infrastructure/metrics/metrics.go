package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Payment metrics
	PaymentsInitiated  *prometheus.CounterVec
	PaymentAmount      prometheus.Histogram
	WithdrawalsStarted prometheus.Counter
	WithdrawalsFailed  prometheus.Counter
	TransfersCompleted prometheus.Counter
	ReversalsApplied   prometheus.Counter

	// Settlement metrics
	WebhooksReceived  *prometheus.CounterVec
	WebhooksProcessed *prometheus.CounterVec
	WebhookDuration   prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Gateway metrics
	GatewayCalls    *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	GatewayErrors   *prometheus.CounterVec

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Payment metrics
		PaymentsInitiated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_payments_initiated_total",
				Help: "Total payment links created by narration",
			},
			[]string{"narration"},
		),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_payment_amount_naira",
			Help:    "Payment amounts in naira",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		WithdrawalsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_withdrawals_started_total",
			Help: "Total withdrawals initiated",
		}),
		WithdrawalsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_withdrawals_failed_total",
			Help: "Total withdrawals that failed and were compensated",
		}),
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallet_transfers_total",
			Help: "Total completed inter-wallet transfers",
		}),
		ReversalsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_reversals_total",
			Help: "Total reversals applied to transaction logs",
		}),

		// Settlement metrics
		WebhooksReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_webhooks_received_total",
				Help: "Total settlement callbacks received by event",
			},
			[]string{"event"},
		),
		WebhooksProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_webhooks_processed_total",
				Help: "Total settlement callbacks by outcome",
			},
			[]string{"outcome"},
		),
		WebhookDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_webhook_duration_seconds",
			Help:    "Settlement callback processing duration",
			Buckets: prometheus.DefBuckets,
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Gateway metrics
		GatewayCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_gateway_calls_total",
				Help: "Total payment gateway calls",
			},
			[]string{"operation"},
		),
		GatewayDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_gateway_duration_seconds",
				Help:    "Payment gateway call duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		GatewayErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_gateway_errors_total",
				Help: "Total payment gateway errors",
			},
			[]string{"operation"},
		),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
