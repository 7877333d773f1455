package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	WalletID    string    `json:"wallet_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		WalletID:    u.WalletID,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse carries a user and their session token.
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:              w.ID,
		UserID:          w.UserID,
		CurrentBalance:  w.CurrentBalance,
		PreviousBalance: w.PreviousBalance,
		UpdatedAt:       w.UpdatedAt,
	}
}

// TransactionResponse represents a transaction log in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Narration   string          `json:"narration"`
	Status      string          `json:"status"`
	RecipientID string          `json:"recipient_id,omitempty"`
	SenderID    string          `json:"sender_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction log to a response.
func TransactionFromDomain(t *domain.TransactionLog) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Reference:   t.Reference,
		Amount:      t.Amount,
		Direction:   string(t.Direction),
		Narration:   string(t.Narration),
		Status:      string(t.Status),
		RecipientID: t.RecipientID,
		SenderID:    t.SenderID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transaction logs to responses.
func TransactionsFromDomain(logs []*domain.TransactionLog) []*TransactionResponse {
	result := make([]*TransactionResponse, len(logs))
	for i, t := range logs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransactionListResponse is a paginated transaction listing.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	Limit        int                    `json:"limit"`
}

// PaymentLinkResponse represents a hosted checkout handle.
type PaymentLinkResponse struct {
	Link      string `json:"link"`
	Reference string `json:"reference"`
}

// TransferReceiptResponse carries both legs of a committed transfer.
type TransferReceiptResponse struct {
	DebitLog  *TransactionResponse `json:"debit_log"`
	CreditLog *TransactionResponse `json:"credit_log"`
	Wallet    *WalletResponse      `json:"wallet"`
}

// WithdrawalResponse represents an initiated withdrawal.
type WithdrawalResponse struct {
	TransferCode string `json:"transfer_code"`
	Reference    string `json:"reference"`
	Status       string `json:"status"`
}

// BankResponse represents a payout institution.
type BankResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Slug string `json:"slug"`
}

// BanksFromGateway converts gateway banks to responses.
func BanksFromGateway(banks []usecase.Bank) []BankResponse {
	result := make([]BankResponse, len(banks))
	for i, b := range banks {
		result[i] = BankResponse{Name: b.Name, Code: b.Code, Slug: b.Slug}
	}
	return result
}

// BankAccountResponse represents a resolved bank account.
type BankAccountResponse struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankCode      string `json:"bank_code"`
}
