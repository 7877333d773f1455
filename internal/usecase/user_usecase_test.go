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

func newUserFixture() (*usecase.UserUseCase, *mocks.MockUserRepository, *mocks.MockWalletRepository) {
	userRepo := mocks.NewMockUserRepository()
	walletRepo := mocks.NewMockWalletRepository()
	uc := usecase.NewUserUseCase(mocks.NewMockTransactionManager(), userRepo, walletRepo, mocks.NewMockIDGenerator())
	return uc, userRepo, walletRepo
}

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		Password:    "Sup3rSecret",
	}
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with zero balance wallet", func(t *testing.T) {
		uc, _, walletRepo := newUserFixture()

		user, err := uc.Register(ctx, validRegisterInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if user.WalletID == "" {
			t.Error("user must reference their wallet")
		}
		if user.HashedPassword == "Sup3rSecret" {
			t.Error("password must not be stored in the clear")
		}

		wallet, err := walletRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("wallet not created: %v", err)
		}
		if wallet.ID != user.WalletID {
			t.Errorf("wallet %s does not match user's wallet reference %s", wallet.ID, user.WalletID)
		}
		if !wallet.CurrentBalance.Equal(decimal.Zero) {
			t.Errorf("new wallet balance = %s, want 0", wallet.CurrentBalance)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, _, _ := newUserFixture()

		if _, err := uc.Register(ctx, validRegisterInput()); err != nil {
			t.Fatalf("first registration: %v", err)
		}

		_, err := uc.Register(ctx, validRegisterInput())
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		uc, _, _ := newUserFixture()

		input := validRegisterInput()
		input.Password = "short"

		if _, err := uc.Register(ctx, input); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUserFixture()

	registered, err := uc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("registration: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := uc.Authenticate(ctx, "ada@example.com", "Sup3rSecret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("authenticated user %s, want %s", user.ID, registered.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(ctx, "ada@example.com", "WrongPassw0rd")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(ctx, "nobody@example.com", "Sup3rSecret")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
