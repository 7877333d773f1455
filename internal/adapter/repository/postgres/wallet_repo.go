package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `id, user_id, current_balance, previous_balance, created_at, updated_at`

// CreateTx inserts a wallet inside an open transaction.
func (r *WalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		wallet.ID,
		wallet.UserID,
		decimalToNumeric(wallet.CurrentBalance),
		decimalToNumeric(wallet.PreviousBalance),
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)

	return err
}

// GetByUserID retrieves a wallet by its owner.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1
	`

	return scanWallet(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate retrieves a wallet by owner with a FOR UPDATE lock.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`

	return scanWallet(pgxTx.QueryRow(ctx, query, userID))
}

// GetByUserIDsForUpdate retrieves multiple wallets with FOR UPDATE locks.
// Rows are locked in the order given, so callers must sort the IDs.
func (r *WalletRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = ANY($1)
		ORDER BY user_id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

// UpdateBalance writes a new balance and snapshots the previous one.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, current, previous decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE wallets
		SET current_balance = $2, previous_balance = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(current), decimalToNumeric(previous), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		wallet   domain.Wallet
		current  pgtype.Numeric
		previous pgtype.Numeric
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&current,
		&previous,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}

	wallet.CurrentBalance = numericToDecimal(current)
	wallet.PreviousBalance = numericToDecimal(previous)

	return &wallet, nil
}
