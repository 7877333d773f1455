package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sotopay/walletd/internal/domain"
)

// UserUseCase handles onboarding and authentication. Registration creates
// the user and their wallet in one store transaction; a user without a
// wallet never exists.
type UserUseCase struct {
	txManager  TransactionManager
	userRepo   UserRepository
	walletRepo WalletRepository
	idGen      IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(txManager TransactionManager, userRepo UserRepository, walletRepo WalletRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		txManager:  txManager,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		idGen:      idGen,
	}
}

// RegisterInput represents input for creating a user.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	BVN         string
	NIN         string
	Password    string
}

// Register creates a new user with a zero-balance wallet.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:              uc.idGen.Generate(),
		CurrentBalance:  decimal.Zero,
		PreviousBalance: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		BVN:            input.BVN,
		NIN:            input.NIN,
		HashedPassword: string(hashed),
		WalletID:       wallet.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	wallet.UserID = user.ID

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := *user
	out.HashedPassword = ""

	return &out, nil
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	out := *user
	out.HashedPassword = ""

	return &out, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := *user
	out.HashedPassword = ""

	return &out, nil
}
