package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
)

// WebhookUseCase maps gateway settlement events onto transaction-log
// state transitions. Deliveries are at-least-once and unordered;
// idempotency is keyed on the stored log status, never on arrival order.
type WebhookUseCase struct {
	txManager TransactionManager
	txnRepo   TransactionRepository
	balance   *BalanceMutator
	metrics   *metrics.Metrics
}

// NewWebhookUseCase creates a new WebhookUseCase. metrics may be nil.
func NewWebhookUseCase(txManager TransactionManager, txnRepo TransactionRepository, balance *BalanceMutator, metrics *metrics.Metrics) *WebhookUseCase {
	return &WebhookUseCase{
		txManager: txManager,
		txnRepo:   txnRepo,
		balance:   balance,
		metrics:   metrics,
	}
}

// WebhookOutcomeKind reports what a delivery did, mostly for metrics and
// logs. Every return that is not an error is an acknowledgement.
type WebhookOutcomeKind string

const (
	WebhookApplied      WebhookOutcomeKind = "applied"
	WebhookUnknownRef   WebhookOutcomeKind = "unknown_reference"
	WebhookAlreadyFinal WebhookOutcomeKind = "already_final"
)

// ProcessCallback advances the log identified by the event's reference.
// Unknown references and deliveries against a terminal status are
// acknowledged without side effects, so gateway retries can never
// double-credit a wallet.
func (uc *WebhookUseCase) ProcessCallback(ctx context.Context, event domain.WebhookEvent) (WebhookOutcomeKind, error) {
	log, err := uc.txnRepo.GetByReference(ctx, event.Reference)
	if errors.Is(err, domain.ErrTransactionNotFound) {
		return WebhookUnknownRef, nil
	}
	if err != nil {
		return "", err
	}

	if log.Status.IsTerminal() {
		return WebhookAlreadyFinal, nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// Re-read under lock: a concurrent delivery may have finished the log
	// between the unlocked read above and here.
	log, err = uc.txnRepo.GetByReferenceForUpdate(ctx, tx, event.Reference)
	if err != nil {
		return "", err
	}

	if log.Status.IsTerminal() {
		return WebhookAlreadyFinal, nil
	}

	switch {
	case event.Category == domain.WebhookCharge && event.Outcome == domain.WebhookSuccess:
		err = uc.settleCharge(ctx, tx, log)
	case event.Category == domain.WebhookCharge:
		err = uc.markFailed(ctx, tx, log)
	case event.Category == domain.WebhookTransfer && event.Outcome == domain.WebhookSuccess:
		err = uc.transition(ctx, tx, log, domain.StatusSuccessful)
	case event.Category == domain.WebhookTransfer:
		err = uc.reverseTransfer(ctx, tx, log)
	default:
		return "", domain.ErrUnknownWebhookEvent
	}

	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return WebhookApplied, nil
}

// settleCharge marks an inbound charge settled and credits the owner's
// wallet for top-ups. Logs without an owner (anonymous payment links)
// settle without a balance effect.
func (uc *WebhookUseCase) settleCharge(ctx context.Context, tx Transaction, log *domain.TransactionLog) error {
	if err := uc.transition(ctx, tx, log, domain.StatusSuccessful); err != nil {
		return err
	}

	if log.Narration == domain.NarrationTopup && log.UserID != "" {
		if _, err := uc.balance.Credit(ctx, tx, log.UserID, log.Amount); err != nil {
			return err
		}
	}

	return nil
}

func (uc *WebhookUseCase) markFailed(ctx context.Context, tx Transaction, log *domain.TransactionLog) error {
	return uc.transition(ctx, tx, log, domain.StatusFailed)
}

// reverseTransfer handles a failed outbound settlement: the withdrawal
// was debited optimistically at initiation, so the funds are restored and
// the log is driven through FAILED into REVERSAL.
func (uc *WebhookUseCase) reverseTransfer(ctx context.Context, tx Transaction, log *domain.TransactionLog) error {
	if err := uc.transition(ctx, tx, log, domain.StatusFailed); err != nil {
		return err
	}

	if log.UserID != "" {
		if _, err := uc.balance.Credit(ctx, tx, log.UserID, log.Amount); err != nil {
			return err
		}
	}

	if err := uc.transition(ctx, tx, log, domain.StatusReversal); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.ReversalsApplied.Inc()
	}

	return nil
}

func (uc *WebhookUseCase) transition(ctx context.Context, tx Transaction, log *domain.TransactionLog, next domain.TransactionStatus) error {
	if err := log.Transition(next); err != nil {
		return err
	}

	return uc.txnRepo.UpdateStatus(ctx, tx, log.ID, next, time.Now().UTC())
}
