package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet // keyed by user ID

	CreateTxFunc              func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error
	GetByUserIDFunc           func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error)
	GetByUserIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error)
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Transaction, id string, current, previous decimal.Decimal, updatedAt time.Time) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Seed stores a wallet directly, bypassing any Func override.
func (m *MockWalletRepository) Seed(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
}

func (m *MockWalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
	return nil
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[userID]; ok {
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockWalletRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error) {
	if m.GetByUserIDsForUpdateFunc != nil {
		return m.GetByUserIDsForUpdateFunc(ctx, tx, userIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, id := range userIDs {
		if w, ok := m.wallets[id]; ok {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, current, previous decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, current, previous, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.ID == id {
			w.CurrentBalance = current
			w.PreviousBalance = previous
			w.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrWalletNotFound
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.TransactionLog // keyed by reference

	CreateFunc                  func(ctx context.Context, log *domain.TransactionLog) error
	CreateTxFunc                func(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error
	GetByReferenceFunc          func(ctx context.Context, reference string) (*domain.TransactionLog, error)
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransactionLog, error)
	ExistsByReferenceFunc       func(ctx context.Context, reference string) (bool, error)
	UpdateStatusFunc            func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	ListFunc                    func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, error)
	CountFunc                   func(ctx context.Context, filter domain.TransactionFilter) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		logs: make(map[string]*domain.TransactionLog),
	}
}

// Seed stores a log directly, bypassing any Func override.
func (m *MockTransactionRepository) Seed(log *domain.TransactionLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.Reference] = log
}

// ByReference returns the stored log, or nil.
func (m *MockTransactionRepository) ByReference(reference string) *domain.TransactionLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logs[reference]
}

func (m *MockTransactionRepository) Create(ctx context.Context, log *domain.TransactionLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[log.Reference]; ok {
		return domain.ErrDuplicateReference
	}
	m.logs[log.Reference] = log
	return nil
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.TransactionLog, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if log, ok := m.logs[reference]; ok {
		return log, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransactionLog, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, reference)
	}
	return m.GetByReference(ctx, reference)
}

func (m *MockTransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	if m.ExistsByReferenceFunc != nil {
		return m.ExistsByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.logs[reference]
	return ok, nil
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, log := range m.logs {
		if log.ID == id {
			log.Status = status
			log.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.TransactionLog
	for _, log := range m.logs {
		if matchesFilter(log, filter) {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	logs, err := m.List(ctx, filter)
	return int64(len(logs)), err
}

func matchesFilter(log *domain.TransactionLog, filter domain.TransactionFilter) bool {
	if filter.UserID != "" && log.UserID != filter.UserID {
		return false
	}
	if filter.Narration != "" && log.Narration != filter.Narration {
		return false
	}
	if filter.Status != "" && log.Status != filter.Status {
		return false
	}
	return true
}

// MockPinRepository is a mock implementation of PinRepository.
type MockPinRepository struct {
	mu   sync.RWMutex
	pins map[string]*domain.TransactionPin // keyed by user ID

	CreateFunc      func(ctx context.Context, pin *domain.TransactionPin) error
	GetByUserIDFunc func(ctx context.Context, userID string) (*domain.TransactionPin, error)
}

func NewMockPinRepository() *MockPinRepository {
	return &MockPinRepository{
		pins: make(map[string]*domain.TransactionPin),
	}
}

func (m *MockPinRepository) Create(ctx context.Context, pin *domain.TransactionPin) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pins[pin.UserID] = pin
	return nil
}

func (m *MockPinRepository) GetByUserID(ctx context.Context, userID string) (*domain.TransactionPin, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pin, ok := m.pins[userID]; ok {
		return pin, nil
	}
	return nil, domain.ErrPinNotSet
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateTxFunc   func(ctx context.Context, tx usecase.Transaction, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu    sync.Mutex
	Begun []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockRetrier is a mock implementation of Retrier. It runs the operation
// once with no retries unless RetryFunc is set.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("SOTO%05d", m.n)
}
