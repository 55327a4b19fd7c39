package service

import (
	"context"

	"bridgeseed-backend/internal/domain"
)

// Actor identifies the authenticated caller of an operation. Role is
// taken from the profile record at token issue time; admin-only
// operations check it once at the service boundary.
type Actor struct {
	ID   string
	Role domain.UserRole
}

func requireAdmin(actor Actor, action string) error {
	if actor.Role != domain.UserRoleAdmin {
		return &domain.PermissionError{Action: action}
	}
	return nil
}

type AuthService interface {
	// ExchangeIDToken verifies a provider ID token and issues API
	// tokens, creating the profile on first contact.
	ExchangeIDToken(ctx context.Context, idToken string) (*domain.User, string, string, error) // user, access, refresh
	// RegisterLocal and LoginLocal serve the dev/local auth mode.
	RegisterLocal(ctx context.Context, email, password, displayName string) (*domain.User, error)
	LoginLocal(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
}

type CashDonationInput struct {
	ProjectID   string
	ProjectName string
	AmountMAD   int64
	ReceiptURL  string
}

type ItemDonationInput struct {
	ProjectID       string
	ProjectName     string
	ItemDescription string
	AssessedMAD     int64 // optional admin-assessed value, usually zero
	ReceiptURL      string
}

type TransactionService interface {
	SubmitCashDonation(ctx context.Context, actor Actor, in CashDonationInput) (*domain.Transaction, error)
	SubmitItemDonation(ctx context.Context, actor Actor, in ItemDonationInput) (*domain.Transaction, error)
	// InitiatePurchase places the item on hold and files the pending
	// purchase claim in one unit; exactly one concurrent buyer wins.
	InitiatePurchase(ctx context.Context, actor Actor, itemID, receiptURL string) (*domain.Transaction, error)
	ListMyTransactions(ctx context.Context, actor Actor) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, actor Actor, id string) (*domain.Transaction, error)
}

type VerificationService interface {
	// VerifyTransaction is the single admin entry point: approve runs
	// transition, reward and badge evaluation atomically; reject runs
	// the transition (and releases a held marketplace item).
	VerifyTransaction(ctx context.Context, actor Actor, transactionID string, decision domain.VerificationDecision, reason string) (*domain.Transaction, error)
	ListPendingTransactions(ctx context.Context, actor Actor) ([]domain.Transaction, error)
}

type BadgeService interface {
	ListPendingRequests(ctx context.Context, actor Actor) ([]domain.BadgeRequest, error)
	ApproveRequest(ctx context.Context, actor Actor, requestID string) error
	RejectRequest(ctx context.Context, actor Actor, requestID string) error
}

type ListingInput struct {
	Title          string
	Description    string
	Category       string
	PriceMAD       int64
	ImageURL       string
	SellerWhatsApp string
}

type MarketplaceService interface {
	CreateListing(ctx context.Context, actor Actor, in ListingInput) (*domain.MarketplaceItem, error)
	GetItem(ctx context.Context, id string) (*domain.MarketplaceItem, error)
	ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error)
	ListMyListings(ctx context.Context, actor Actor) ([]domain.MarketplaceItem, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	SetVisibility(ctx context.Context, actor Actor, anonymous bool) error
	Leaderboard(ctx context.Context, limit int32) ([]domain.User, error)
	GetPointsHistory(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type ContactService interface {
	Submit(ctx context.Context, name, email, subject, message string) (*domain.ContactSubmission, error)
	List(ctx context.Context, actor Actor) ([]domain.ContactSubmission, error)
	MarkRead(ctx context.Context, actor Actor, id string) error
}

type EmailService interface {
	SendSubmissionReceipt(ctx context.Context, email, name string, tx *domain.Transaction) error
	SendVerificationResult(ctx context.Context, email, name string, tx *domain.Transaction) error
	SendBadgeResult(ctx context.Context, email, name string, req *domain.BadgeRequest) error
	SendPendingDigest(ctx context.Context, adminEmail string, pendingTransactions, pendingBadges int) error
	SendStalePurchaseNotice(ctx context.Context, adminEmail string, item *domain.MarketplaceItem) error
}
