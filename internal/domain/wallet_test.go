package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestWallet_ValidateDebit(t *testing.T) {
	w := &Wallet{CurrentBalance: decimal.NewFromInt(1000)}

	if err := w.ValidateDebit(decimal.NewFromInt(1000)); err != nil {
		t.Errorf("debit of full balance should pass, got %v", err)
	}

	if err := w.ValidateDebit(decimal.NewFromInt(1001)); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestWallet_ApplyDebitCredit(t *testing.T) {
	w := &Wallet{CurrentBalance: decimal.NewFromInt(5000)}

	if got := w.ApplyDebit(decimal.NewFromInt(1000)); !got.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("ApplyDebit = %s, want 4000", got)
	}

	if got := w.ApplyCredit(decimal.NewFromInt(250)); !got.Equal(decimal.NewFromInt(5250)) {
		t.Errorf("ApplyCredit = %s, want 5250", got)
	}
}
