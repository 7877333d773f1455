package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
	"github.com/sotopay/walletd/internal/usecase/mocks"
)

type orchestratorFixture struct {
	txManager  *mocks.MockTransactionManager
	walletRepo *mocks.MockWalletRepository
	txnRepo    *mocks.MockTransactionRepository
	pinRepo    *mocks.MockPinRepository
	gateway    *mocks.MockGatewayClient
	uc         *usecase.TransactionUseCase
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &orchestratorFixture{
		txManager:  mocks.NewMockTransactionManager(),
		walletRepo: mocks.NewMockWalletRepository(),
		txnRepo:    mocks.NewMockTransactionRepository(),
		pinRepo:    mocks.NewMockPinRepository(),
		gateway:    mocks.NewMockGatewayClient(ctrl),
	}

	balance := usecase.NewBalanceMutator(f.walletRepo)
	f.uc = usecase.NewTransactionUseCase(
		f.txManager,
		f.txnRepo,
		f.pinRepo,
		balance,
		f.gateway,
		mocks.NewMockReferenceGenerator(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)

	return f
}

func (f *orchestratorFixture) seedWallet(userID string, balance int64) *domain.Wallet {
	w := &domain.Wallet{
		ID:             "wal-" + userID,
		UserID:         userID,
		CurrentBalance: decimal.NewFromInt(balance),
	}
	f.walletRepo.Seed(w)
	return w
}

func (f *orchestratorFixture) seedPin(t *testing.T, userID, pin string) {
	t.Helper()
	if err := f.uc.SetupPin(context.Background(), userID, pin); err != nil {
		t.Fatalf("pin setup failed: %v", err)
	}
}

func TestTransactionUseCase_InitiatePayment(t *testing.T) {
	t.Run("writes pending log and returns gateway link", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		f.gateway.EXPECT().
			CreatePaymentLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.PaymentLinkRequest) (*usecase.PaymentLink, error) {
				return &usecase.PaymentLink{AuthorizationURL: "https://checkout.test/x", Reference: req.Reference}, nil
			})

		link, err := f.uc.InitiatePayment(ctx, usecase.InitiatePaymentInput{
			User:      &domain.User{ID: "user-1", Email: "a@b.test"},
			Amount:    decimal.NewFromInt(5000),
			Narration: domain.NarrationTopup,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		log := f.txnRepo.ByReference(link.Reference)
		if log == nil {
			t.Fatal("expected a stored log for the returned reference")
		}
		if log.Status != domain.StatusPending {
			t.Errorf("expected PENDING log, got %s", log.Status)
		}
		if log.Direction != domain.DirectionCredit {
			t.Errorf("expected CREDIT log, got %s", log.Direction)
		}
		if log.UserID != "user-1" {
			t.Errorf("expected owner user-1, got %q", log.UserID)
		}
	})

	t.Run("gateway failure leaves pending log for later reconciliation", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		f.gateway.EXPECT().
			CreatePaymentLink(ctx, gomock.Any()).
			Return(nil, fmt.Errorf("%w: upstream 502", domain.ErrGateway))

		_, err := f.uc.InitiatePayment(ctx, usecase.InitiatePaymentInput{
			Amount:    decimal.NewFromInt(100),
			Narration: domain.NarrationTopup,
		})
		if !errors.Is(err, domain.ErrGateway) {
			t.Fatalf("expected gateway error, got %v", err)
		}

		// The PENDING log stays behind to be settled by the webhook.
		logs, _ := f.txnRepo.List(ctx, domain.TransactionFilter{Status: domain.StatusPending})
		if len(logs) != 1 {
			t.Errorf("expected 1 pending log, got %d", len(logs))
		}
	})

	t.Run("regenerates reference on collision", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		// First two generated references collide with stored ones.
		f.txnRepo.Seed(&domain.TransactionLog{ID: "old-1", Reference: "SOTO00001", Status: domain.StatusSuccessful})
		f.txnRepo.Seed(&domain.TransactionLog{ID: "old-2", Reference: "SOTO00002", Status: domain.StatusSuccessful})

		f.gateway.EXPECT().
			CreatePaymentLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.PaymentLinkRequest) (*usecase.PaymentLink, error) {
				return &usecase.PaymentLink{AuthorizationURL: "https://checkout.test/x", Reference: req.Reference}, nil
			})

		link, err := f.uc.InitiatePayment(ctx, usecase.InitiatePaymentInput{
			Amount:    decimal.NewFromInt(100),
			Narration: domain.NarrationTopup,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link.Reference != "SOTO00003" {
			t.Errorf("expected third generated reference, got %s", link.Reference)
		}
	})

	t.Run("bounded retries then reference exhausted", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		f.txnRepo.ExistsByReferenceFunc = func(ctx context.Context, reference string) (bool, error) {
			return true, nil
		}

		_, err := f.uc.InitiatePayment(ctx, usecase.InitiatePaymentInput{
			Amount:    decimal.NewFromInt(100),
			Narration: domain.NarrationTopup,
		})
		if !errors.Is(err, domain.ErrReferenceExhausted) {
			t.Fatalf("expected ErrReferenceExhausted, got %v", err)
		}
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		_, err := f.uc.InitiatePayment(context.Background(), usecase.InitiatePaymentInput{
			Amount:    decimal.Zero,
			Narration: domain.NarrationTopup,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestTransactionUseCase_TransferBetweenWallets(t *testing.T) {
	t.Run("moves funds and writes cross referencing logs", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		sender := f.seedWallet("alice", 5000)
		recipient := f.seedWallet("bob", 0)
		f.seedPin(t, "alice", "1234")

		result, err := f.uc.TransferBetweenWallets(ctx, usecase.TransferInput{
			SenderID:    "alice",
			RecipientID: "bob",
			Amount:      decimal.NewFromInt(1000),
			Pin:         "1234",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !sender.CurrentBalance.Equal(decimal.NewFromInt(4000)) {
			t.Errorf("sender balance = %s, want 4000", sender.CurrentBalance)
		}
		if !sender.PreviousBalance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("sender previous balance = %s, want 5000", sender.PreviousBalance)
		}
		if !recipient.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("recipient balance = %s, want 1000", recipient.CurrentBalance)
		}

		if result.DebitLog.RecipientID != "bob" || result.CreditLog.SenderID != "alice" {
			t.Error("logs must cross-reference the counterpart")
		}
		if result.DebitLog.Reference == result.CreditLog.Reference {
			t.Error("each leg needs its own reference")
		}
		if result.DebitLog.Status != domain.StatusSuccessful || result.CreditLog.Status != domain.StatusSuccessful {
			t.Error("both legs must commit SUCCESSFUL")
		}
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		f.seedWallet("alice", 500)
		f.seedWallet("bob", 0)
		f.seedPin(t, "alice", "1234")

		_, err := f.uc.TransferBetweenWallets(context.Background(), usecase.TransferInput{
			SenderID:    "alice",
			RecipientID: "bob",
			Amount:      decimal.NewFromInt(700),
			Pin:         "1234",
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
	})

	t.Run("recipient wallet missing", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		f.seedWallet("alice", 5000)
		f.seedPin(t, "alice", "1234")

		_, err := f.uc.TransferBetweenWallets(context.Background(), usecase.TransferInput{
			SenderID:    "alice",
			RecipientID: "ghost",
			Amount:      decimal.NewFromInt(100),
			Pin:         "1234",
		})
		if !errors.Is(err, domain.ErrWalletNotFound) {
			t.Fatalf("expected ErrWalletNotFound, got %v", err)
		}
	})

	t.Run("transfer to self is rejected", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		_, err := f.uc.TransferBetweenWallets(context.Background(), usecase.TransferInput{
			SenderID:    "alice",
			RecipientID: "alice",
			Amount:      decimal.NewFromInt(100),
			Pin:         "1234",
		})
		if !errors.Is(err, domain.ErrSameWallet) {
			t.Fatalf("expected ErrSameWallet, got %v", err)
		}
	})

	t.Run("wrong pin", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		f.seedWallet("alice", 5000)
		f.seedWallet("bob", 0)
		f.seedPin(t, "alice", "1234")

		_, err := f.uc.TransferBetweenWallets(context.Background(), usecase.TransferInput{
			SenderID:    "alice",
			RecipientID: "bob",
			Amount:      decimal.NewFromInt(100),
			Pin:         "9999",
		})
		if !errors.Is(err, domain.ErrIncorrectPin) {
			t.Fatalf("expected ErrIncorrectPin, got %v", err)
		}
	})
}

func TestTransactionUseCase_InitiateWithdrawal(t *testing.T) {
	t.Run("insufficient balance rejected before any gateway call", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		f.seedWallet("alice", 1000)
		f.seedPin(t, "alice", "1234")

		// No gateway expectations registered: a gateway call would fail
		// the gomock controller.
		_, err := f.uc.InitiateWithdrawal(context.Background(), usecase.WithdrawalInput{
			UserID:        "alice",
			AccountNumber: "0123456789",
			BankCode:      "058",
			Amount:        decimal.NewFromInt(2000),
			Pin:           "1234",
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
	})

	t.Run("optimistic debit then successful transfer", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		wallet := f.seedWallet("alice", 5000)
		f.seedPin(t, "alice", "1234")

		f.gateway.EXPECT().
			VerifyBankAccount(ctx, "0123456789", "058").
			Return(&usecase.BankAccount{AccountNumber: "0123456789", AccountName: "ALICE A", BankCode: "058"}, nil)
		f.gateway.EXPECT().
			InitiateTransfer(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.TransferRequest) (*usecase.TransferHandle, error) {
				return &usecase.TransferHandle{TransferCode: "TRF_1", Reference: req.Reference, Status: "otp"}, nil
			})

		handle, err := f.uc.InitiateWithdrawal(ctx, usecase.WithdrawalInput{
			UserID:        "alice",
			AccountNumber: "0123456789",
			BankCode:      "058",
			Amount:        decimal.NewFromInt(2000),
			Pin:           "1234",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if handle.TransferCode != "TRF_1" {
			t.Errorf("expected transfer handle TRF_1, got %s", handle.TransferCode)
		}

		if !wallet.CurrentBalance.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("wallet balance = %s, want 3000 (optimistic debit)", wallet.CurrentBalance)
		}

		log := f.txnRepo.ByReference(handle.Reference)
		if log == nil || log.Status != domain.StatusPending {
			t.Errorf("expected PENDING debit log, got %+v", log)
		}
	})

	t.Run("gateway failure restores funds and reverses the log", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		wallet := f.seedWallet("alice", 5000)
		f.seedPin(t, "alice", "1234")

		f.gateway.EXPECT().
			VerifyBankAccount(ctx, "0123456789", "058").
			Return(&usecase.BankAccount{AccountNumber: "0123456789", AccountName: "ALICE A", BankCode: "058"}, nil)
		f.gateway.EXPECT().
			InitiateTransfer(ctx, gomock.Any()).
			Return(nil, fmt.Errorf("%w: timeout", domain.ErrGateway))

		_, err := f.uc.InitiateWithdrawal(ctx, usecase.WithdrawalInput{
			UserID:        "alice",
			AccountNumber: "0123456789",
			BankCode:      "058",
			Amount:        decimal.NewFromInt(2000),
			Pin:           "1234",
		})
		if !errors.Is(err, domain.ErrGateway) {
			t.Fatalf("expected gateway error, got %v", err)
		}

		if !wallet.CurrentBalance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("wallet balance = %s, want 5000 after compensation", wallet.CurrentBalance)
		}

		logs, _ := f.txnRepo.List(ctx, domain.TransactionFilter{UserID: "alice"})
		if len(logs) != 1 {
			t.Fatalf("expected 1 log, got %d", len(logs))
		}
		if logs[0].Status != domain.StatusReversal {
			t.Errorf("log status = %s, want REVERSAL", logs[0].Status)
		}
	})

	t.Run("invalid bank account stops before debit", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		wallet := f.seedWallet("alice", 5000)
		f.seedPin(t, "alice", "1234")

		f.gateway.EXPECT().
			VerifyBankAccount(ctx, "0000000000", "058").
			Return(nil, fmt.Errorf("%w: could not resolve account", domain.ErrGateway))

		_, err := f.uc.InitiateWithdrawal(ctx, usecase.WithdrawalInput{
			UserID:        "alice",
			AccountNumber: "0000000000",
			BankCode:      "058",
			Amount:        decimal.NewFromInt(2000),
			Pin:           "1234",
		})
		if !errors.Is(err, domain.ErrGateway) {
			t.Fatalf("expected gateway error, got %v", err)
		}

		if !wallet.CurrentBalance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("wallet must be untouched, got %s", wallet.CurrentBalance)
		}
	})
}

func TestTransactionUseCase_CompleteWithdrawal(t *testing.T) {
	f := newOrchestratorFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().
		FinalizeTransfer(ctx, "TRF_1", "123456").
		Return(&usecase.TransferResult{TransferCode: "TRF_1", Status: "success", Message: "Transfer completed"}, nil)

	result, err := f.uc.CompleteWithdrawal(ctx, "TRF_1", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("expected gateway result forwarded verbatim, got %+v", result)
	}
}

func TestTransactionUseCase_Pin(t *testing.T) {
	t.Run("setup once then immutable", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		if err := f.uc.SetupPin(ctx, "alice", "1234"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := f.uc.SetupPin(ctx, "alice", "5678"); !errors.Is(err, domain.ErrPinAlreadySet) {
			t.Fatalf("expected ErrPinAlreadySet, got %v", err)
		}

		if err := f.uc.ValidatePin(ctx, "alice", "1234"); err != nil {
			t.Errorf("correct pin rejected: %v", err)
		}
	})

	t.Run("validate without setup", func(t *testing.T) {
		f := newOrchestratorFixture(t)

		if err := f.uc.ValidatePin(context.Background(), "alice", "1234"); !errors.Is(err, domain.ErrPinNotSet) {
			t.Fatalf("expected ErrPinNotSet, got %v", err)
		}
	})

	t.Run("rejects malformed pins", func(t *testing.T) {
		f := newOrchestratorFixture(t)
		ctx := context.Background()

		for _, pin := range []string{"", "12", "12345", "12a4"} {
			if err := f.uc.SetupPin(ctx, "alice", pin); !errors.Is(err, domain.ErrIncorrectPin) {
				t.Errorf("pin %q: expected ErrIncorrectPin, got %v", pin, err)
			}
		}
	})
}
