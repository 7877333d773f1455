package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's funds. There is exactly one wallet per user,
// created at onboarding. Balances are only ever changed through the
// balance mutator inside a store transaction.
type Wallet struct {
	ID              string
	UserID          string
	CurrentBalance  decimal.Decimal
	PreviousBalance decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateDebit checks whether amount can be taken from the wallet.
func (w *Wallet) ValidateDebit(amount decimal.Decimal) error {
	if w.CurrentBalance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after removing amount.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.CurrentBalance.Sub(amount)
}

// ApplyCredit returns the balance after adding amount.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.CurrentBalance.Add(amount)
}
