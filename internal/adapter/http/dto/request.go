package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/usecase"
)

// RegisterRequest represents a request to create a user.
type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	BVN         string `json:"bvn"`
	NIN         string `json:"nin"`
	Password    string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		BVN:         r.BVN,
		NIN:         r.NIN,
		Password:    r.Password,
	}
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PaymentLinkRequest represents a request for a hosted payment link.
type PaymentLinkRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Narration string          `json:"narration"`
}

// TransferRequest represents an inter-wallet transfer.
type TransferRequest struct {
	RecipientID string          `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
	Pin         string          `json:"pin"`
}

// WithdrawalRequest represents a withdrawal to an external bank account.
type WithdrawalRequest struct {
	AccountNumber string          `json:"account_number"`
	BankCode      string          `json:"bank_code"`
	Amount        decimal.Decimal `json:"amount"`
	Pin           string          `json:"pin"`
}

// CompleteWithdrawalRequest carries the transfer second factor.
type CompleteWithdrawalRequest struct {
	TransferCode string `json:"transfer_code"`
	OTP          string `json:"otp"`
}

// SetupPinRequest represents a pin creation request.
type SetupPinRequest struct {
	Pin string `json:"pin"`
}
