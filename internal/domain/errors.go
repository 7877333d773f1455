package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSameWallet          = errors.New("cannot transfer to own wallet")

	// Transaction errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidNarration        = errors.New("unknown narration")
	ErrMissingReference        = errors.New("transaction reference is required")
	ErrDuplicateReference      = errors.New("duplicate transaction reference")
	ErrReferenceExhausted      = errors.New("could not allocate a unique reference")
	ErrInvalidStatusTransition = errors.New("invalid transaction status transition")

	// Pin errors
	ErrPinNotSet     = errors.New("transaction pin not set")
	ErrPinAlreadySet = errors.New("transaction pin already set")
	ErrIncorrectPin  = errors.New("incorrect transaction pin")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// Gateway errors
	ErrGateway = errors.New("payment gateway error")
)
