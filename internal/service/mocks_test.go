package service

import (
	"context"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// mockStore wires mock repositories behind the Store interface. RunTx
// just calls fn against the same store, which is what the service
// layer assumes about transactional visibility.
type mockStore struct {
	users         *MockUserRepo
	transactions  *MockTransactionRepo
	items         *MockItemRepo
	badgeRequests *MockBadgeRequestRepo
	ledger        *MockLedgerRepo
	contacts      *MockContactRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:         &MockUserRepo{},
		transactions:  &MockTransactionRepo{},
		items:         &MockItemRepo{},
		badgeRequests: &MockBadgeRequestRepo{},
		ledger:        &MockLedgerRepo{},
		contacts:      &MockContactRepo{},
	}
}

func (s *mockStore) Users() repository.UserRepository                 { return s.users }
func (s *mockStore) Transactions() repository.TransactionRepository   { return s.transactions }
func (s *mockStore) Items() repository.MarketplaceItemRepository      { return s.items }
func (s *mockStore) BadgeRequests() repository.BadgeRequestRepository { return s.badgeRequests }
func (s *mockStore) Ledger() repository.LedgerRepository              { return s.ledger }
func (s *mockStore) Contacts() repository.ContactRepository           { return s.contacts }

func (s *mockStore) RunTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *mockStore) assertExpectations(t mock.TestingT) {
	s.users.AssertExpectations(t)
	s.transactions.AssertExpectations(t)
	s.items.AssertExpectations(t)
	s.badgeRequests.AssertExpectations(t)
	s.ledger.AssertExpectations(t)
	s.contacts.AssertExpectations(t)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateVisibility(ctx context.Context, id string, anonymous bool) error {
	args := m.Called(ctx, id, anonymous)
	return args.Error(0)
}
func (m *MockUserRepo) ApplyRewardDeltas(ctx context.Context, id string, points int64, stats domain.UserStats) error {
	args := m.Called(ctx, id, points, stats)
	return args.Error(0)
}
func (m *MockUserRepo) SetBadge(ctx context.Context, id string, track domain.BadgeTrack, badgeName string) error {
	args := m.Called(ctx, id, track, badgeName)
	return args.Error(0)
}
func (m *MockUserRepo) TopByBalance(ctx context.Context, limit int32) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) MarkVerified(ctx context.Context, id string, verifiedOn time.Time) error {
	args := m.Called(ctx, id, verifiedOn)
	return args.Error(0)
}
func (m *MockTransactionRepo) MarkRejected(ctx context.Context, id string, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.MarketplaceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.MarketplaceItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplaceItem), args.Error(1)
}
func (m *MockItemRepo) ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketplaceItem), args.Error(1)
}
func (m *MockItemRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.MarketplaceItem, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketplaceItem), args.Error(1)
}
func (m *MockItemRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.MarketplaceItem, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketplaceItem), args.Error(1)
}
func (m *MockItemRepo) HoldForPurchase(ctx context.Context, id, buyerID, receiptURL string) error {
	args := m.Called(ctx, id, buyerID, receiptURL)
	return args.Error(0)
}
func (m *MockItemRepo) MarkSold(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBadgeRequestRepo
type MockBadgeRequestRepo struct {
	mock.Mock
}

func (m *MockBadgeRequestRepo) Create(ctx context.Context, req *domain.BadgeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockBadgeRequestRepo) GetByID(ctx context.Context, id string) (*domain.BadgeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BadgeRequest), args.Error(1)
}
func (m *MockBadgeRequestRepo) ListPending(ctx context.Context) ([]domain.BadgeRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BadgeRequest), args.Error(1)
}
func (m *MockBadgeRequestRepo) HasPending(ctx context.Context, userID string, track domain.BadgeTrack) (bool, error) {
	args := m.Called(ctx, userID, track)
	return args.Bool(0), args.Error(1)
}
func (m *MockBadgeRequestRepo) Resolve(ctx context.Context, id string, status domain.BadgeRequestStatus, resolvedOn time.Time) error {
	args := m.Called(ctx, id, status, resolvedOn)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) HasEntryForTransaction(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, sub *domain.ContactSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockContactRepo) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContactSubmission), args.Error(1)
}
func (m *MockContactRepo) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSubmissionReceipt(ctx context.Context, email, name string, tx *domain.Transaction) error {
	args := m.Called(ctx, email, name, tx)
	return args.Error(0)
}
func (m *MockEmailService) SendVerificationResult(ctx context.Context, email, name string, tx *domain.Transaction) error {
	args := m.Called(ctx, email, name, tx)
	return args.Error(0)
}
func (m *MockEmailService) SendBadgeResult(ctx context.Context, email, name string, req *domain.BadgeRequest) error {
	args := m.Called(ctx, email, name, req)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingDigest(ctx context.Context, adminEmail string, pendingTransactions, pendingBadges int) error {
	args := m.Called(ctx, adminEmail, pendingTransactions, pendingBadges)
	return args.Error(0)
}
func (m *MockEmailService) SendStalePurchaseNotice(ctx context.Context, adminEmail string, item *domain.MarketplaceItem) error {
	args := m.Called(ctx, adminEmail, item)
	return args.Error(0)
}
