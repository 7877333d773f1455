package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sotopay/walletd/internal/adapter/http/dto"
	"github.com/sotopay/walletd/internal/adapter/http/middleware"
	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	InitiatePayment(ctx context.Context, input usecase.InitiatePaymentInput) (*usecase.PaymentLink, error)
	TransferBetweenWallets(ctx context.Context, input usecase.TransferInput) (*usecase.WalletTransferResult, error)
	InitiateWithdrawal(ctx context.Context, input usecase.WithdrawalInput) (*usecase.TransferHandle, error)
	CompleteWithdrawal(ctx context.Context, transferCode, otp string) (*usecase.TransferResult, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, int64, error)
	VerifyTransaction(ctx context.Context, reference string) (string, error)
}

// UserProfileService provides the full user record behind a token.
type UserProfileService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TransactionHandler handles payment, transfer and withdrawal requests.
type TransactionHandler struct {
	txnUC  TransactionService
	userUC UserProfileService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService, userUC UserProfileService) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC, userUC: userUC}
}

// CreatePaymentLink returns a hosted checkout link for a wallet top-up.
func (h *TransactionHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.PaymentLinkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The token only carries ID and email; the gateway metadata wants the
	// full profile.
	fullUser, err := h.userUC.GetUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	link, err := h.txnUC.InitiatePayment(r.Context(), usecase.InitiatePaymentInput{
		User:      fullUser,
		Amount:    req.Amount,
		Narration: domain.Narration(req.Narration),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "link generated successfully", dto.PaymentLinkResponse{
		Link:      link.AuthorizationURL,
		Reference: link.Reference,
	})
}

// Transfer moves funds to another user's wallet.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.TransferRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.txnUC.TransferBetweenWallets(r.Context(), usecase.TransferInput{
		SenderID:    user.ID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		Pin:         req.Pin,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "transfer completed", dto.TransferReceiptResponse{
		DebitLog:  dto.TransactionFromDomain(result.DebitLog),
		CreditLog: dto.TransactionFromDomain(result.CreditLog),
		Wallet:    dto.WalletFromDomain(result.Wallet),
	})
}

// Withdraw starts a payout to an external bank account.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.WithdrawalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	handle, err := h.txnUC.InitiateWithdrawal(r.Context(), usecase.WithdrawalInput{
		UserID:        user.ID,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Amount:        req.Amount,
		Pin:           req.Pin,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "withdrawal initiated", dto.WithdrawalResponse{
		TransferCode: handle.TransferCode,
		Reference:    handle.Reference,
		Status:       handle.Status,
	})
}

// CompleteWithdrawal submits the withdrawal second factor.
func (h *TransactionHandler) CompleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req dto.CompleteWithdrawalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.txnUC.CompleteWithdrawal(r.Context(), req.TransferCode, req.OTP)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Message, dto.WithdrawalResponse{
		TransferCode: result.TransferCode,
		Status:       result.Status,
	})
}

// List returns the authenticated user's transaction history.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := domain.TransactionFilter{
		UserID:    user.ID,
		Narration: domain.Narration(r.URL.Query().Get("narration")),
		Status:    domain.TransactionStatus(r.URL.Query().Get("status")),
		Limit:     parseIntQuery(r, "limit", 10),
		Page:      parseIntQuery(r, "page", 1),
	}

	logs, total, err := h.txnUC.ListTransactions(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "transactions retrieved", dto.TransactionListResponse{
		Transactions: dto.TransactionsFromDomain(logs),
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	})
}

// Verify proxies a provider-side status check for a reference.
func (h *TransactionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference")
		return
	}

	status, err := h.txnUC.VerifyTransaction(r.Context(), reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "transaction verified", map[string]string{
		"reference": reference,
		"status":    status,
	})
}
