package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentLinkRequest asks the gateway for a hosted payment page.
type PaymentLinkRequest struct {
	Reference string
	Amount    decimal.Decimal
	Email     string
	Narration string
	Metadata  map[string]string
}

// PaymentLink is the gateway's hosted checkout handle.
type PaymentLink struct {
	AuthorizationURL string
	Reference        string
}

// Bank is a payout destination institution.
type Bank struct {
	Name string
	Code string
	Slug string
}

// BankAccount is a verified payout destination.
type BankAccount struct {
	AccountNumber string
	AccountName   string
	BankCode      string
}

// TransferRequest initiates a payout to an external bank account.
type TransferRequest struct {
	Account   BankAccount
	Amount    decimal.Decimal
	Reference string
	Narration string
}

// TransferHandle identifies an in-flight gateway transfer, used later to
// finalize it with a second factor.
type TransferHandle struct {
	TransferCode string
	Reference    string
	Status       string
}

// TransferResult is the gateway's verdict on a finalized transfer.
type TransferResult struct {
	TransferCode string
	Status       string
	Message      string
}

// GatewayClient talks to the external payment provider. Every call runs
// under a bounded timeout; a timeout is a gateway failure, not a pending
// state. Implementations wrap upstream failures in domain.ErrGateway.
type GatewayClient interface {
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
	VerifyTransaction(ctx context.Context, reference string) (string, error)
	ListBanks(ctx context.Context, page, limit int) ([]Bank, error)
	VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (*BankAccount, error)
	InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferHandle, error)
	FinalizeTransfer(ctx context.Context, transferCode, otp string) (*TransferResult, error)
}
