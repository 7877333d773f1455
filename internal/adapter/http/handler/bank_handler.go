package handler

import (
	"context"
	"net/http"

	"github.com/sotopay/walletd/internal/adapter/http/dto"
	"github.com/sotopay/walletd/internal/usecase"
)

// BankService defines the behavior needed by BankHandler.
type BankService interface {
	ListBanks(ctx context.Context, page, limit int) ([]usecase.Bank, error)
	VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (*usecase.BankAccount, error)
}

// BankHandler serves the payout bank directory.
type BankHandler struct {
	txnUC BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(txnUC BankService) *BankHandler {
	return &BankHandler{txnUC: txnUC}
}

// List returns the gateway's bank directory, paginated.
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 50)

	banks, err := h.txnUC.ListBanks(r.Context(), page, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "banks retrieved", dto.BanksFromGateway(banks))
}

// VerifyAccount resolves an account number and bank code to a holder name.
func (h *BankHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	accountNumber := r.URL.Query().Get("account_number")
	bankCode := r.URL.Query().Get("bank_code")
	if accountNumber == "" || bankCode == "" {
		writeError(w, http.StatusBadRequest, "account_number and bank_code are required")
		return
	}

	account, err := h.txnUC.VerifyBankAccount(r.Context(), accountNumber, bankCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "account verified", dto.BankAccountResponse{
		AccountNumber: account.AccountNumber,
		AccountName:   account.AccountName,
		BankCode:      account.BankCode,
	})
}
