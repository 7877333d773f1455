package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sotopay/walletd/internal/domain"
)

// PinRepository implements usecase.PinRepository.
type PinRepository struct {
	pool *pgxpool.Pool
}

// NewPinRepository creates a new PinRepository.
func NewPinRepository(pool *pgxpool.Pool) *PinRepository {
	return &PinRepository{pool: pool}
}

// Create inserts a transaction pin. The unique index on user_id backs the
// one-pin-per-user rule.
func (r *PinRepository) Create(ctx context.Context, pin *domain.TransactionPin) error {
	query := `
		INSERT INTO pins (id, user_id, pin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		pin.ID,
		pin.UserID,
		pin.Pin,
		pin.CreatedAt,
		pin.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrPinAlreadySet
	}

	return err
}

// GetByUserID retrieves a user's pin.
func (r *PinRepository) GetByUserID(ctx context.Context, userID string) (*domain.TransactionPin, error) {
	query := `
		SELECT id, user_id, pin, created_at, updated_at
		FROM pins
		WHERE user_id = $1
	`

	var pin domain.TransactionPin
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&pin.ID,
		&pin.UserID,
		&pin.Pin,
		&pin.CreatedAt,
		&pin.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPinNotSet
	}
	if err != nil {
		return nil, err
	}

	return &pin, nil
}
