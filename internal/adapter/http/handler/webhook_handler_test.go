package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
	"github.com/sotopay/walletd/internal/usecase"
)

type webhookServiceStub struct {
	processFn func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error)
}

func (s *webhookServiceStub) ProcessCallback(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
	return s.processFn(ctx, event)
}

// Prometheus collectors register globally, so the package shares one set.
var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

func newWebhookHandler(stub *webhookServiceStub) *WebhookHandler {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.New()
	})
	return NewWebhookHandler(stub, testMetrics, zerolog.Nop())
}

func TestWebhookHandler_ChargeSuccess(t *testing.T) {
	var captured domain.WebhookEvent
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			captured = event
			return usecase.WebhookApplied, nil
		},
	})

	body := `{"event":"charge.success","data":{"reference":"SOTO1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Category != domain.WebhookCharge || captured.Outcome != domain.WebhookSuccess {
		t.Fatalf("unexpected event: %+v", captured)
	}
	if captured.Reference != "SOTO1" {
		t.Fatalf("expected reference SOTO1, got %s", captured.Reference)
	}
}

func TestWebhookHandler_TransferFailureMapsToFailure(t *testing.T) {
	var captured domain.WebhookEvent
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			captured = event
			return usecase.WebhookApplied, nil
		},
	})

	body := `{"event":"transfer.reversed","data":{"reference":"SOTO2"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Category != domain.WebhookTransfer || captured.Outcome != domain.WebhookFailure {
		t.Fatalf("unexpected event: %+v", captured)
	}
}

func TestWebhookHandler_UnknownEventAcknowledged(t *testing.T) {
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			t.Fatal("unhandled events must not reach the processor")
			return "", nil
		},
	})

	body := `{"event":"subscription.create","data":{"reference":"SOTO3"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unhandled events should still be acknowledged, got %d", rec.Code)
	}
}

func TestWebhookHandler_UnknownReferenceAcknowledged(t *testing.T) {
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			return usecase.WebhookUnknownRef, nil
		},
	})

	body := `{"event":"charge.success","data":{"reference":"NOPE"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown references should still be acknowledged, got %d", rec.Code)
	}
}

func TestWebhookHandler_MissingReference(t *testing.T) {
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			t.Fatal("events without a reference must not reach the processor")
			return "", nil
		},
	})

	body := `{"event":"charge.success","data":{}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookHandler_ProcessingErrorBounces(t *testing.T) {
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			return "", errors.New("db down")
		},
	})

	body := `{"event":"charge.success","data":{"reference":"SOTO1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("store failures must bounce so the gateway retries, got %d", rec.Code)
	}
}

func TestWebhookHandler_InvalidJSON(t *testing.T) {
	handler := newWebhookHandler(&webhookServiceStub{
		processFn: func(ctx context.Context, event domain.WebhookEvent) (usecase.WebhookOutcomeKind, error) {
			t.Fatal("malformed payloads must not reach the processor")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()

	handler.HandleCallback(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
