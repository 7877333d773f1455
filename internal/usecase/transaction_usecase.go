package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/metrics"
)

// maxReferenceAttempts bounds retry-on-collision for new references.
const maxReferenceAttempts = 3

// TransactionUseCase orchestrates payment initiation, inter-wallet
// transfers and withdrawals over the ledger store and the payment gateway.
type TransactionUseCase struct {
	txManager TransactionManager
	txnRepo   TransactionRepository
	pinRepo   PinRepository
	balance   *BalanceMutator
	gateway   GatewayClient
	refGen    ReferenceGenerator
	idGen     IDGenerator
	retrier   Retrier
	metrics   *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase. metrics may be
// nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	txnRepo TransactionRepository,
	pinRepo PinRepository,
	balance *BalanceMutator,
	gateway GatewayClient,
	refGen ReferenceGenerator,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager: txManager,
		txnRepo:   txnRepo,
		pinRepo:   pinRepo,
		balance:   balance,
		gateway:   gateway,
		refGen:    refGen,
		idGen:     idGen,
		retrier:   retrier,
		metrics:   metrics,
	}
}

// uniqueReference allocates a reference that does not yet exist in the
// store, regenerating on collision up to maxReferenceAttempts times.
func (uc *TransactionUseCase) uniqueReference(ctx context.Context) (string, error) {
	for i := 0; i < maxReferenceAttempts; i++ {
		ref := uc.refGen.Generate()

		exists, err := uc.txnRepo.ExistsByReference(ctx, ref)
		if err != nil {
			return "", err
		}

		if !exists {
			return ref, nil
		}
	}

	return "", domain.ErrReferenceExhausted
}

// InitiatePaymentInput represents input for generating a payment link.
type InitiatePaymentInput struct {
	User      *domain.User
	Amount    decimal.Decimal
	Narration domain.Narration
}

// InitiatePayment writes a PENDING credit log and asks the gateway for a
// hosted payment link carrying the log's reference.
//
// If the gateway call fails after the log is written, the PENDING entry is
// left in place on purpose: the settlement webhook (or an expiry job) will
// reconcile it later. The caller still sees the gateway error.
func (uc *TransactionUseCase) InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*PaymentLink, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	narration := input.Narration
	if narration == "" {
		narration = domain.NarrationTopup
	}
	if !narration.IsValid() {
		return nil, domain.ErrInvalidNarration
	}

	ref, err := uc.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	log := &domain.TransactionLog{
		ID:        uc.idGen.Generate(),
		Reference: ref,
		Amount:    input.Amount,
		Direction: domain.DirectionCredit,
		Narration: narration,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	req := PaymentLinkRequest{
		Reference: ref,
		Amount:    input.Amount,
		Narration: string(narration),
	}

	if input.User != nil {
		log.UserID = input.User.ID
		req.Email = input.User.Email
		req.Metadata = map[string]string{
			"customer_id":  input.User.ID,
			"name":         input.User.FirstName + " " + input.User.LastName,
			"phone_number": input.User.PhoneNumber,
		}
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsInitiated.WithLabelValues(string(narration)).Inc()
		uc.metrics.PaymentAmount.Observe(input.Amount.InexactFloat64())
	}

	return uc.gateway.CreatePaymentLink(ctx, req)
}

// TransferInput represents input for an inter-wallet transfer.
type TransferInput struct {
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
	Pin         string
}

// WalletTransferResult carries both legs of a committed transfer.
type WalletTransferResult struct {
	DebitLog  *domain.TransactionLog
	CreditLog *domain.TransactionLog
	Wallet    *domain.Wallet
}

// TransferBetweenWallets moves funds between two internal wallets. Both
// log inserts and both balance updates commit in one store transaction
// with the wallet rows locked in sorted order, so either all four effects
// happen or none do.
func (uc *TransactionUseCase) TransferBetweenWallets(ctx context.Context, input TransferInput) (*WalletTransferResult, error) {
	if input.SenderID == input.RecipientID {
		return nil, domain.ErrSameWallet
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := uc.ValidatePin(ctx, input.SenderID, input.Pin); err != nil {
		return nil, err
	}

	debitRef, err := uc.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}

	creditRef, err := uc.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}

	// Lock wallets in sorted order to avoid deadlocks between two
	// transfers running in opposite directions. The retrier re-runs the
	// whole transaction if the store still reports one.
	userIDs := []string{input.SenderID, input.RecipientID}
	sort.Strings(userIDs)

	var result *WalletTransferResult

	err = uc.retrier.Retry(ctx, func() error {
		r, err := uc.transferTx(ctx, input, userIDs, debitRef, creditRef)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCompleted.Inc()
	}

	return result, nil
}

func (uc *TransactionUseCase) transferTx(ctx context.Context, input TransferInput, userIDs []string, debitRef, creditRef string) (*WalletTransferResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallets, err := uc.balance.walletRepo.GetByUserIDsForUpdate(ctx, tx, userIDs)
	if err != nil {
		return nil, err
	}

	if len(wallets) != len(userIDs) {
		return nil, domain.ErrWalletNotFound
	}

	var sender *domain.Wallet
	for _, w := range wallets {
		if w.UserID == input.SenderID {
			sender = w
		}
	}
	if sender == nil {
		return nil, domain.ErrWalletNotFound
	}

	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	debitLog := &domain.TransactionLog{
		ID:          uc.idGen.Generate(),
		UserID:      input.SenderID,
		Reference:   debitRef,
		Amount:      input.Amount,
		Direction:   domain.DirectionDebit,
		Narration:   domain.NarrationInterwallet,
		Status:      domain.StatusSuccessful,
		RecipientID: input.RecipientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	creditLog := &domain.TransactionLog{
		ID:        uc.idGen.Generate(),
		UserID:    input.RecipientID,
		Reference: creditRef,
		Amount:    input.Amount,
		Direction: domain.DirectionCredit,
		Narration: domain.NarrationInterwallet,
		Status:    domain.StatusSuccessful,
		SenderID:  input.SenderID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.txnRepo.CreateTx(ctx, tx, debitLog); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.CreateTx(ctx, tx, creditLog); err != nil {
		return nil, err
	}

	senderWallet, err := uc.balance.Debit(ctx, tx, input.SenderID, input.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := uc.balance.Credit(ctx, tx, input.RecipientID, input.Amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &WalletTransferResult{
		DebitLog:  debitLog,
		CreditLog: creditLog,
		Wallet:    senderWallet,
	}, nil
}

// WithdrawalInput represents input for initiating a withdrawal.
type WithdrawalInput struct {
	UserID        string
	AccountNumber string
	BankCode      string
	Amount        decimal.Decimal
	Pin           string
}

// InitiateWithdrawal debits the wallet optimistically, records a PENDING
// debit log and asks the gateway to move the funds out. When the gateway
// call fails (including timeouts) the debit is compensated immediately:
// the funds are credited back and the log ends in REVERSAL, so the caller
// never observes debited-but-unaccounted funds.
func (uc *TransactionUseCase) InitiateWithdrawal(ctx context.Context, input WithdrawalInput) (*TransferHandle, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := uc.ValidatePin(ctx, input.UserID, input.Pin); err != nil {
		return nil, err
	}

	// Cheap pre-check so an obviously underfunded withdrawal is rejected
	// before any gateway round trip. The authoritative check happens again
	// under the row lock below.
	wallet, err := uc.balance.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := wallet.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	account, err := uc.gateway.VerifyBankAccount(ctx, input.AccountNumber, input.BankCode)
	if err != nil {
		return nil, err
	}

	ref, err := uc.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	log := &domain.TransactionLog{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Reference: ref,
		Amount:    input.Amount,
		Direction: domain.DirectionDebit,
		Narration: domain.NarrationWithdrawal,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.txnRepo.CreateTx(ctx, tx, log); err != nil {
		return nil, err
	}

	if _, err := uc.balance.Debit(ctx, tx, input.UserID, input.Amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsStarted.Inc()
	}

	handle, err := uc.gateway.InitiateTransfer(ctx, TransferRequest{
		Account:   *account,
		Amount:    input.Amount,
		Reference: ref,
		Narration: string(domain.NarrationWithdrawal),
	})
	if err != nil {
		if compErr := uc.compensateWithdrawal(ctx, log, input.Amount); compErr != nil {
			return nil, compErr
		}

		if uc.metrics != nil {
			uc.metrics.WithdrawalsFailed.Inc()
			uc.metrics.ReversalsApplied.Inc()
		}

		return nil, err
	}

	return handle, nil
}

// compensateWithdrawal restores optimistically debited funds and drives
// the log through FAILED into REVERSAL, all in one store transaction.
func (uc *TransactionUseCase) compensateWithdrawal(ctx context.Context, log *domain.TransactionLog, amount decimal.Decimal) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.balance.Credit(ctx, tx, log.UserID, amount); err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := log.Transition(domain.StatusFailed); err != nil {
		return err
	}
	if err := uc.txnRepo.UpdateStatus(ctx, tx, log.ID, domain.StatusFailed, now); err != nil {
		return err
	}

	if err := log.Transition(domain.StatusReversal); err != nil {
		return err
	}
	if err := uc.txnRepo.UpdateStatus(ctx, tx, log.ID, domain.StatusReversal, now); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CompleteWithdrawal forwards the second-factor confirmation to the
// gateway. The ledger was already debited at initiation, so there is no
// further mutation here.
func (uc *TransactionUseCase) CompleteWithdrawal(ctx context.Context, transferCode, otp string) (*TransferResult, error) {
	return uc.gateway.FinalizeTransfer(ctx, transferCode, otp)
}

// SetupPin creates the user's transaction pin. Pins are immutable once
// set.
func (uc *TransactionUseCase) SetupPin(ctx context.Context, userID, pin string) error {
	if err := domain.ValidatePinFormat(pin); err != nil {
		return err
	}

	_, err := uc.pinRepo.GetByUserID(ctx, userID)
	if err == nil {
		return domain.ErrPinAlreadySet
	}
	if err != domain.ErrPinNotSet {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	return uc.pinRepo.Create(ctx, &domain.TransactionPin{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Pin:       string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// ValidatePin checks a submitted pin against the stored hash.
func (uc *TransactionUseCase) ValidatePin(ctx context.Context, userID, pin string) error {
	stored, err := uc.pinRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.Pin), []byte(pin)) != nil {
		return domain.ErrIncorrectPin
	}

	return nil
}

// ListTransactions lists transaction logs matching the filter.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	logs, err := uc.txnRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.txnRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// VerifyTransaction asks the gateway for the provider-side status of a
// reference. The log must exist locally; settlement itself only happens
// through the webhook path.
func (uc *TransactionUseCase) VerifyTransaction(ctx context.Context, reference string) (string, error) {
	if _, err := uc.txnRepo.GetByReference(ctx, reference); err != nil {
		return "", err
	}

	return uc.gateway.VerifyTransaction(ctx, reference)
}

// ListBanks proxies the gateway's bank directory.
func (uc *TransactionUseCase) ListBanks(ctx context.Context, page, limit int) ([]Bank, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	return uc.gateway.ListBanks(ctx, page, limit)
}

// VerifyBankAccount resolves an account number against the gateway.
func (uc *TransactionUseCase) VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (*BankAccount, error) {
	return uc.gateway.VerifyBankAccount(ctx, accountNumber, bankCode)
}

// GetWallet reads a user's wallet.
func (uc *TransactionUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return uc.balance.Get(ctx, userID)
}
