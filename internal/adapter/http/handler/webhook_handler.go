package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
	"github.com/sotopay/walletd/internal/usecase"
)

const maxWebhookBody = 1 << 20

// WebhookService defines the behavior needed by WebhookHandler.
type WebhookService interface {
	ProcessCallback(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error)
}

// WebhookHandler receives settlement callbacks from the payment gateway.
type WebhookHandler struct {
	webhookUC WebhookService
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookUC WebhookService, m *metrics.Metrics, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{webhookUC: webhookUC, metrics: m, logger: logger}
}

// webhookPayload is the subset of the provider's callback body we read.
type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandleCallback processes a gateway settlement event. The gateway retries
// on anything but 200, so every outcome except a transient store failure is
// acknowledged. Unknown event categories and unknown references are logged
// and dropped rather than bounced.
func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	h.metrics.WebhooksReceived.WithLabelValues(payload.Event).Inc()

	event, err := domain.ParseWebhookEvent(payload.Event, payload.Data.Reference)
	if errors.Is(err, domain.ErrUnknownWebhookEvent) {
		h.logger.Info().Str("event", payload.Event).Msg("ignoring unhandled webhook event")
		h.metrics.WebhooksProcessed.WithLabelValues("ignored").Inc()
		writeJSON(w, http.StatusOK, "event ignored", nil)
		return
	}
	if event.Reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference")
		return
	}

	outcome, err := h.webhookUC.ProcessCallback(r.Context(), event)
	if err != nil {
		h.logger.Error().Err(err).
			Str("event", payload.Event).
			Str("reference", event.Reference).
			Msg("webhook processing failed")
		h.metrics.WebhooksProcessed.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	h.metrics.WebhooksProcessed.WithLabelValues(string(outcome)).Inc()
	h.metrics.WebhookDuration.Observe(time.Since(start).Seconds())

	h.logger.Info().
		Str("event", payload.Event).
		Str("reference", event.Reference).
		Str("outcome", string(outcome)).
		Msg("webhook processed")

	writeJSON(w, http.StatusOK, "acknowledged", nil)
}
