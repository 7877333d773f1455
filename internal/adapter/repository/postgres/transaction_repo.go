package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, reference, amount, direction, narration, status, recipient_id, sender_id, created_at, updated_at`

const insertTransaction = `
	INSERT INTO transaction_logs (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Create inserts a transaction log. The unique index on reference maps to
// domain.ErrDuplicateReference so callers can regenerate and retry.
func (r *TransactionRepository) Create(ctx context.Context, log *domain.TransactionLog) error {
	_, err := r.pool.Exec(ctx, insertTransaction, transactionArgs(log)...)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateReference
	}

	return err
}

// CreateTx inserts a transaction log inside an open transaction.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertTransaction, transactionArgs(log)...)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateReference
	}

	return err
}

// GetByReference retrieves a transaction log by its reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.TransactionLog, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_logs
		WHERE reference = $1
	`

	return scanTransaction(r.pool.QueryRow(ctx, query, reference))
}

// GetByReferenceForUpdate retrieves a transaction log with a FOR UPDATE
// lock, serializing concurrent settlement deliveries for one reference.
func (r *TransactionRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransactionLog, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_logs
		WHERE reference = $1
		FOR UPDATE
	`

	return scanTransaction(pgxTx.QueryRow(ctx, query, reference))
}

// ExistsByReference reports whether a reference is already taken.
func (r *TransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transaction_logs WHERE reference = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, reference).Scan(&exists)

	return exists, err
}

// UpdateStatus moves a transaction log to a new status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transaction_logs
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, string(status), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List retrieves transaction logs matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, error) {
	where, args := filterClauses(filter)

	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_logs
	` + where + `
		ORDER BY created_at DESC
	`

	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.TransactionLog
	for rows.Next() {
		log, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// Count counts transaction logs matching the filter.
func (r *TransactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	where, args := filterClauses(filter)

	query := `SELECT COUNT(*) FROM transaction_logs` + where

	var count int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)

	return count, err
}

func filterClauses(filter domain.TransactionFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Narration != "" {
		args = append(args, string(filter.Narration))
		clauses = append(clauses, fmt.Sprintf("narration = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func transactionArgs(log *domain.TransactionLog) []any {
	return []any{
		log.ID,
		log.UserID,
		log.Reference,
		decimalToNumeric(log.Amount),
		string(log.Direction),
		string(log.Narration),
		string(log.Status),
		log.RecipientID,
		log.SenderID,
		log.CreatedAt,
		log.UpdatedAt,
	}
}

func scanTransaction(row pgx.Row) (*domain.TransactionLog, error) {
	var (
		log    domain.TransactionLog
		amount pgtype.Numeric
	)

	err := row.Scan(
		&log.ID,
		&log.UserID,
		&log.Reference,
		&amount,
		&log.Direction,
		&log.Narration,
		&log.Status,
		&log.RecipientID,
		&log.SenderID,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	log.Amount = numericToDecimal(amount)

	return &log, nil
}
