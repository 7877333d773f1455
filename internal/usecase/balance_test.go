package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
	"github.com/sotopay/walletd/internal/usecase/mocks"
)

func TestBalanceMutator_Credit(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockWalletRepository()
	m := usecase.NewBalanceMutator(repo)

	wallet := &domain.Wallet{ID: "wal-1", UserID: "alice", CurrentBalance: decimal.NewFromInt(100)}
	repo.Seed(wallet)

	got, err := m.Credit(ctx, &mocks.MockTransaction{}, "alice", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.CurrentBalance.Equal(decimal.NewFromInt(140)) {
		t.Errorf("current balance = %s, want 140", got.CurrentBalance)
	}
	if !got.PreviousBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("previous balance = %s, want 100", got.PreviousBalance)
	}
}

func TestBalanceMutator_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the previous balance", func(t *testing.T) {
		repo := mocks.NewMockWalletRepository()
		m := usecase.NewBalanceMutator(repo)
		repo.Seed(&domain.Wallet{ID: "wal-1", UserID: "alice", CurrentBalance: decimal.NewFromInt(100)})

		got, err := m.Debit(ctx, &mocks.MockTransaction{}, "alice", decimal.NewFromInt(60))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !got.CurrentBalance.Equal(decimal.NewFromInt(40)) {
			t.Errorf("current balance = %s, want 40", got.CurrentBalance)
		}
		if !got.PreviousBalance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("previous balance = %s, want 100", got.PreviousBalance)
		}
	})

	t.Run("checks the balance under the lock", func(t *testing.T) {
		repo := mocks.NewMockWalletRepository()
		m := usecase.NewBalanceMutator(repo)
		repo.Seed(&domain.Wallet{ID: "wal-1", UserID: "alice", CurrentBalance: decimal.NewFromInt(50)})

		_, err := m.Debit(ctx, &mocks.MockTransaction{}, "alice", decimal.NewFromInt(60))
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
	})

	t.Run("missing wallet", func(t *testing.T) {
		repo := mocks.NewMockWalletRepository()
		m := usecase.NewBalanceMutator(repo)

		_, err := m.Debit(ctx, &mocks.MockTransaction{}, "ghost", decimal.NewFromInt(10))
		if !errors.Is(err, domain.ErrWalletNotFound) {
			t.Fatalf("expected ErrWalletNotFound, got %v", err)
		}
	})
}
