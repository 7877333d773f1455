package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
)

// BalanceMutator is the only code path that changes a wallet balance.
// Credit and Debit run inside a caller-supplied store transaction with the
// wallet row locked, so the balance they read is the balance that holds at
// commit time. The prior value is snapshotted into PreviousBalance on
// every mutation.
type BalanceMutator struct {
	walletRepo WalletRepository
}

// NewBalanceMutator creates a new BalanceMutator.
func NewBalanceMutator(walletRepo WalletRepository) *BalanceMutator {
	return &BalanceMutator{walletRepo: walletRepo}
}

// Credit adds amount to the user's wallet.
func (m *BalanceMutator) Credit(ctx context.Context, tx Transaction, userID string, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := m.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	return m.apply(ctx, tx, wallet, wallet.ApplyCredit(amount))
}

// Debit removes amount from the user's wallet. It fails with
// ErrInsufficientBalance when amount exceeds the balance of the locked
// row, which is what keeps a committed debit from going negative under
// concurrent load.
func (m *BalanceMutator) Debit(ctx context.Context, tx Transaction, userID string, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := m.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateDebit(amount); err != nil {
		return nil, err
	}

	return m.apply(ctx, tx, wallet, wallet.ApplyDebit(amount))
}

// Get reads a wallet outside of any transaction.
func (m *BalanceMutator) Get(ctx context.Context, userID string) (*domain.Wallet, error) {
	return m.walletRepo.GetByUserID(ctx, userID)
}

func (m *BalanceMutator) apply(ctx context.Context, tx Transaction, wallet *domain.Wallet, newBalance decimal.Decimal) (*domain.Wallet, error) {
	now := time.Now().UTC()
	previous := wallet.CurrentBalance

	err := m.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, previous, now)
	if err != nil {
		return nil, err
	}

	wallet.PreviousBalance = previous
	wallet.CurrentBalance = newBalance
	wallet.UpdatedAt = now

	return wallet, nil
}
