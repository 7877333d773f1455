package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Wallet, error)
	GetByUserIDsForUpdate(ctx context.Context, tx Transaction, userIDs []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, current, previous decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for transaction logs.
type TransactionRepository interface {
	Create(ctx context.Context, log *domain.TransactionLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.TransactionLog) error
	GetByReference(ctx context.Context, reference string) (*domain.TransactionLog, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, reference string) (*domain.TransactionLog, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, error)
	Count(ctx context.Context, filter domain.TransactionFilter) (int64, error)
}

// PinRepository defines data access for transaction pins.
type PinRepository interface {
	Create(ctx context.Context, pin *domain.TransactionPin) error
	// GetByUserID returns domain.ErrPinNotSet when the user has no pin.
	GetByUserID(ctx context.Context, userID string) (*domain.TransactionPin, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique row IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator produces opaque transaction references. Callers must
// still verify uniqueness against the store before committing a log entry.
type ReferenceGenerator interface {
	Generate() string
}

// Retrier re-runs an operation when it fails with a transient store
// error, such as a deadlock between two opposing transfers.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
