package handler

import (
	"context"
	"net/http"

	"github.com/sotopay/walletd/internal/adapter/http/dto"
	"github.com/sotopay/walletd/internal/adapter/http/middleware"
	"github.com/sotopay/walletd/internal/domain"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	SetupPin(ctx context.Context, userID, pin string) error
}

// WalletHandler handles wallet and pin requests.
type WalletHandler struct {
	txnUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(txnUC WalletService) *WalletHandler {
	return &WalletHandler{txnUC: txnUC}
}

// Get returns the authenticated user's wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	wallet, err := h.txnUC.GetWallet(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "wallet retrieved", dto.WalletFromDomain(wallet))
}

// SetupPin creates the user's transaction pin.
func (h *WalletHandler) SetupPin(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.SetupPinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.txnUC.SetupPin(r.Context(), user.ID, req.Pin); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "pin created", nil)
}
