package service

import (
	"context"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository"

	"github.com/google/uuid"
)

// Badge ladders. Donor tiers are evaluated highest first; buyer and
// seller tracks have a single tier each.
var donorTiers = []struct {
	MinDonated int64
	Name       string
}{
	{1000, "Gold Donor"},
	{500, "Silver Donor"},
	{100, "Bronze Donor"},
}

const (
	buyerBadgeName       = "Community Supporter"
	buyerBadgeThreshold  = 5
	sellerBadgeName      = "Star Seller"
	sellerBadgeThreshold = 5
)

// EvaluateBadges derives the highest eligible badge per track and
// returns only the tracks where it differs from the held badge.
func EvaluateBadges(u *domain.User) []domain.BadgeCandidate {
	var candidates []domain.BadgeCandidate

	var donorBadge string
	for _, tier := range donorTiers {
		if u.Stats.TotalDonated >= tier.MinDonated {
			donorBadge = tier.Name
			break
		}
	}
	if donorBadge != "" && donorBadge != u.Badges.Donor {
		candidates = append(candidates, domain.BadgeCandidate{Track: domain.BadgeTrackDonor, BadgeName: donorBadge})
	}

	if u.Stats.TotalPurchases >= buyerBadgeThreshold && u.Badges.Buyer != buyerBadgeName {
		candidates = append(candidates, domain.BadgeCandidate{Track: domain.BadgeTrackBuyer, BadgeName: buyerBadgeName})
	}

	if u.Stats.TotalSales >= sellerBadgeThreshold && u.Badges.Seller != sellerBadgeName {
		candidates = append(candidates, domain.BadgeCandidate{Track: domain.BadgeTrackSeller, BadgeName: sellerBadgeName})
	}

	return candidates
}

// enqueueBadgeCandidates files a pending request per candidate,
// skipping tracks that already have a pending request for this user.
func enqueueBadgeCandidates(ctx context.Context, s repository.Store, u *domain.User) ([]domain.BadgeRequest, error) {
	var created []domain.BadgeRequest
	for _, c := range EvaluateBadges(u) {
		pending, err := s.BadgeRequests().HasPending(ctx, u.ID, c.Track)
		if err != nil {
			return nil, err
		}
		if pending {
			continue
		}
		req := &domain.BadgeRequest{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			UserName:  u.DisplayName,
			Track:     c.Track,
			BadgeName: c.BadgeName,
			Status:    domain.BadgeRequestStatusPending,
		}
		if err := s.BadgeRequests().Create(ctx, req); err != nil {
			return nil, err
		}
		created = append(created, *req)
	}
	return created, nil
}

type badgeService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewBadgeService(store repository.Store, emailSvc EmailService) BadgeService {
	return &badgeService{store: store, emailSvc: emailSvc}
}

func (s *badgeService) ListPendingRequests(ctx context.Context, actor Actor) ([]domain.BadgeRequest, error) {
	if err := requireAdmin(actor, "list badge requests"); err != nil {
		return nil, err
	}
	return s.store.BadgeRequests().ListPending(ctx)
}

func (s *badgeService) ApproveRequest(ctx context.Context, actor Actor, requestID string) error {
	if err := requireAdmin(actor, "approve badge requests"); err != nil {
		return err
	}

	var req *domain.BadgeRequest
	var user *domain.User
	err := s.store.RunTx(ctx, func(tx repository.Store) error {
		var err error
		req, err = tx.BadgeRequests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := tx.BadgeRequests().Resolve(ctx, requestID, domain.BadgeRequestStatusApproved, time.Now().UTC()); err != nil {
			return err
		}
		user, err = tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		// Donor grants never downgrade: an out-of-order approval of a
		// lower tier resolves the request without touching the profile.
		if req.Track == domain.BadgeTrackDonor &&
			domain.DonorBadgeRank(req.BadgeName) < domain.DonorBadgeRank(user.Badges.Donor) {
			return nil
		}
		return tx.Users().SetBadge(ctx, req.UserID, req.Track, req.BadgeName)
	})
	if err != nil {
		return err
	}

	req.Status = domain.BadgeRequestStatusApproved
	logger.Verification("badge_request", requestID, "approve", actor.ID, "badge", req.BadgeName)
	if err := s.emailSvc.SendBadgeResult(ctx, user.Email, user.DisplayName, req); err != nil {
		logger.Error("Failed to send badge result email", "error", err, "request_id", requestID)
	}
	return nil
}

func (s *badgeService) RejectRequest(ctx context.Context, actor Actor, requestID string) error {
	if err := requireAdmin(actor, "reject badge requests"); err != nil {
		return err
	}
	if err := s.store.BadgeRequests().Resolve(ctx, requestID, domain.BadgeRequestStatusRejected, time.Now().UTC()); err != nil {
		return err
	}
	logger.Verification("badge_request", requestID, "reject", actor.ID)
	return nil
}
