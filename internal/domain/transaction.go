package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks which side of a money movement a log entry records.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Narration is the business reason code for a transaction.
type Narration string

const (
	NarrationTopup       Narration = "TOPUP"
	NarrationWithdrawal  Narration = "WITHDRAWAL"
	NarrationInterwallet Narration = "INTERWALLET_TRANSFER"
	NarrationPayout      Narration = "PAYOUT"
	NarrationRefund      Narration = "REFUND"
)

var validNarrations = map[Narration]bool{
	NarrationTopup:       true,
	NarrationWithdrawal:  true,
	NarrationInterwallet: true,
	NarrationPayout:      true,
	NarrationRefund:      true,
}

// IsValid reports whether n is a known narration.
func (n Narration) IsValid() bool {
	return validNarrations[n]
}

// TransactionStatus is the settlement state of a log entry.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusSuccessful TransactionStatus = "SUCCESSFUL"
	StatusFailed     TransactionStatus = "FAILED"
	StatusReversal   TransactionStatus = "REVERSAL"
)

// IsTerminal reports whether no further transition is permitted.
// SUCCESSFUL never mutates again and never has another balance effect.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusSuccessful || s == StatusReversal
}

// CanTransitionTo enforces the settlement state machine:
// PENDING -> {SUCCESSFUL, FAILED}, FAILED -> REVERSAL.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusSuccessful || next == StatusFailed
	case StatusFailed:
		return next == StatusReversal
	default:
		return false
	}
}

// TransactionLog is one entry in the ledger. Reference is globally unique
// and immutable once assigned; it doubles as the idempotency key for
// gateway settlement callbacks.
type TransactionLog struct {
	ID          string
	UserID      string
	Reference   string
	Amount      decimal.Decimal
	Direction   Direction
	Narration   Narration
	Status      TransactionStatus
	RecipientID string
	SenderID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks invariants that hold for every new log entry.
func (t *TransactionLog) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !t.Narration.IsValid() {
		return ErrInvalidNarration
	}
	if t.Reference == "" {
		return ErrMissingReference
	}
	return nil
}

// Transition validates and applies a status change.
func (t *TransactionLog) Transition(next TransactionStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	t.Status = next
	return nil
}

// TransactionFilter narrows List queries.
type TransactionFilter struct {
	UserID    string
	Narration Narration
	Status    TransactionStatus
	Limit     int
	Page      int
}
