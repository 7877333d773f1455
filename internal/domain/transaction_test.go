package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    TransactionStatus
		to      TransactionStatus
		allowed bool
	}{
		{"pending to successful", StatusPending, StatusSuccessful, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to reversal", StatusPending, StatusReversal, false},
		{"failed to reversal", StatusFailed, StatusReversal, true},
		{"failed to successful", StatusFailed, StatusSuccessful, false},
		{"successful is terminal", StatusSuccessful, StatusFailed, false},
		{"successful never re-succeeds", StatusSuccessful, StatusSuccessful, false},
		{"reversal is terminal", StatusReversal, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusFailed.IsTerminal() {
		t.Error("PENDING and FAILED must not be terminal")
	}
	if !StatusSuccessful.IsTerminal() || !StatusReversal.IsTerminal() {
		t.Error("SUCCESSFUL and REVERSAL must be terminal")
	}
}

func TestTransactionLog_Transition(t *testing.T) {
	log := &TransactionLog{Status: StatusPending}

	if err := log.Transition(StatusFailed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Status != StatusFailed {
		t.Errorf("expected FAILED, got %s", log.Status)
	}

	if err := log.Transition(StatusReversal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := log.Transition(StatusPending); err != ErrInvalidStatusTransition {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestTransactionLog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		log     TransactionLog
		wantErr error
	}{
		{
			name: "valid entry",
			log: TransactionLog{
				Reference: "SOTO123451700000000000",
				Amount:    decimal.NewFromInt(5000),
				Narration: NarrationTopup,
			},
			wantErr: nil,
		},
		{
			name: "zero amount",
			log: TransactionLog{
				Reference: "SOTO123451700000000000",
				Amount:    decimal.Zero,
				Narration: NarrationTopup,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			log: TransactionLog{
				Reference: "SOTO123451700000000000",
				Amount:    decimal.NewFromInt(-10),
				Narration: NarrationWithdrawal,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "unknown narration",
			log: TransactionLog{
				Reference: "SOTO123451700000000000",
				Amount:    decimal.NewFromInt(10),
				Narration: Narration("CHARGEBACK"),
			},
			wantErr: ErrInvalidNarration,
		},
		{
			name: "missing reference",
			log: TransactionLog{
				Amount:    decimal.NewFromInt(10),
				Narration: NarrationRefund,
			},
			wantErr: ErrMissingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.log.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
