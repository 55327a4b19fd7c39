package repository

import (
	"context"
	"time"

	"bridgeseed-backend/internal/domain"
)

// Store bundles every repository plus the transactional runner. The
// verification orchestrator runs its whole decision through RunTx so
// the transition, reward and badge stages commit or roll back together.
type Store interface {
	Users() UserRepository
	Transactions() TransactionRepository
	Items() MarketplaceItemRepository
	BadgeRequests() BadgeRequestRepository
	Ledger() LedgerRepository
	Contacts() ContactRepository

	RunTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateVisibility(ctx context.Context, id string, anonymous bool) error

	// ApplyRewardDeltas atomically increments the balance and the
	// statistic counters by the given deltas.
	ApplyRewardDeltas(ctx context.Context, id string, points int64, stats domain.UserStats) error
	SetBadge(ctx context.Context, id string, track domain.BadgeTrack, badgeName string) error

	TopByBalance(ctx context.Context, limit int32) ([]domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	ListPending(ctx context.Context) ([]domain.Transaction, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error)

	// MarkVerified moves PENDING to VERIFIED. Returns InvalidStateError
	// when the transaction is already resolved, ErrNotFound when absent.
	MarkVerified(ctx context.Context, id string, verifiedOn time.Time) error
	// MarkRejected moves PENDING to REJECTED and stores the reason.
	MarkRejected(ctx context.Context, id string, reason string) error
}

type MarketplaceItemRepository interface {
	Create(ctx context.Context, item *domain.MarketplaceItem) error
	GetByID(ctx context.Context, id string) (*domain.MarketplaceItem, error)
	ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.MarketplaceItem, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.MarketplaceItem, error)

	// HoldForPurchase moves AVAILABLE to PENDING for the given buyer.
	// Returns ConflictError when another purchase already holds the item.
	HoldForPurchase(ctx context.Context, id, buyerID, receiptURL string) error
	// MarkSold moves PENDING to SOLD.
	MarkSold(ctx context.Context, id string) error
	// Release moves PENDING back to AVAILABLE and clears the buyer and
	// receipt references.
	Release(ctx context.Context, id string) error
}

type BadgeRequestRepository interface {
	Create(ctx context.Context, req *domain.BadgeRequest) error
	GetByID(ctx context.Context, id string) (*domain.BadgeRequest, error)
	ListPending(ctx context.Context) ([]domain.BadgeRequest, error)
	HasPending(ctx context.Context, userID string, track domain.BadgeTrack) (bool, error)

	// Resolve moves PENDING to the given terminal status.
	Resolve(ctx context.Context, id string, status domain.BadgeRequestStatus, resolvedOn time.Time) error
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID string, limit, offset int32) ([]domain.LedgerEntry, int32, error)
	HasEntryForTransaction(ctx context.Context, transactionID string) (bool, error)
}

type ContactRepository interface {
	Create(ctx context.Context, sub *domain.ContactSubmission) error
	List(ctx context.Context) ([]domain.ContactSubmission, error)
	MarkRead(ctx context.Context, id string) error
}
