package service

import (
	"context"
	"fmt"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"

	"github.com/google/uuid"
)

// dpsPerMAD: every full 10 MAD of a verified cash-type transaction
// earns one DPS point. Item donations and purchases earn none.
const dpsPerMAD = 10

// PointsForAmount returns floor(amountMAD / 10).
func PointsForAmount(amountMAD int64) int64 {
	if amountMAD <= 0 {
		return 0
	}
	return amountMAD / dpsPerMAD
}

// RewardEngine applies the point and statistic deltas for a verified
// transaction. It must run inside the verification transaction: the
// status compare-and-set upstream is what makes it at-most-once, and
// the ledger check below catches any violation of that assumption.
type RewardEngine struct{}

func (RewardEngine) deltas(tx *domain.Transaction) (int64, domain.UserStats) {
	var stats domain.UserStats
	var points int64
	switch tx.Kind {
	case domain.TransactionKindCashDonation:
		points = PointsForAmount(tx.AmountMAD)
		stats.TotalDonated = tx.AmountMAD
	case domain.TransactionKindItemDonation:
		// AmountMAD is an optional assessed value, usually zero.
		stats.TotalDonated = tx.AmountMAD
		stats.TotalItemsDonated = 1
	case domain.TransactionKindPurchase:
		stats.TotalPurchases = 1
	}
	return points, stats
}

// Apply credits the owning user and returns the updated profile.
func (e RewardEngine) Apply(ctx context.Context, s repository.Store, tx *domain.Transaction) (*domain.User, error) {
	applied, err := s.Ledger().HasEntryForTransaction(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, &domain.InvalidStateError{Entity: "transaction", ID: tx.ID, Want: "unrewarded"}
	}

	points, stats := e.deltas(tx)
	if err := s.Users().ApplyRewardDeltas(ctx, tx.UserID, points, stats); err != nil {
		return nil, err
	}

	if points > 0 {
		entry := &domain.LedgerEntry{
			ID:            uuid.New().String(),
			UserID:        tx.UserID,
			Points:        points,
			Type:          domain.LedgerEntryDonationReward,
			TransactionID: &tx.ID,
			Description:   fmt.Sprintf("DPS for %d MAD donation (ref %s)", tx.AmountMAD, tx.ReferenceCode),
		}
		if err := s.Ledger().CreateEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	return s.Users().GetByID(ctx, tx.UserID)
}

// CreditSale increments the seller's sales counter for a verified
// purchase and returns the updated seller profile.
func (RewardEngine) CreditSale(ctx context.Context, s repository.Store, sellerID string) (*domain.User, error) {
	if err := s.Users().ApplyRewardDeltas(ctx, sellerID, 0, domain.UserStats{TotalSales: 1}); err != nil {
		return nil, err
	}
	return s.Users().GetByID(ctx, sellerID)
}
