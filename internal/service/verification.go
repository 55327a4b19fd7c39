package service

import (
	"context"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository"
)

type verificationService struct {
	store    repository.Store
	rewards  RewardEngine
	emailSvc EmailService
}

func NewVerificationService(store repository.Store, emailSvc EmailService) VerificationService {
	return &verificationService{store: store, emailSvc: emailSvc}
}

func (s *verificationService) ListPendingTransactions(ctx context.Context, actor Actor) ([]domain.Transaction, error) {
	if err := requireAdmin(actor, "list pending transactions"); err != nil {
		return nil, err
	}
	return s.store.Transactions().ListPending(ctx)
}

// VerifyTransaction applies one admin decision to one pending claim.
// Approval runs the status transition, the reward application and the
// badge evaluation in a single database transaction, so a failure at
// any stage leaves the claim pending and untouched.
func (s *verificationService) VerifyTransaction(ctx context.Context, actor Actor, transactionID string, decision domain.VerificationDecision, reason string) (*domain.Transaction, error) {
	if err := requireAdmin(actor, "verify transactions"); err != nil {
		return nil, err
	}

	tx, err := s.store.Transactions().GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	switch decision {
	case domain.DecisionApprove:
		return s.approve(ctx, actor, tx)
	case domain.DecisionReject:
		return s.reject(ctx, actor, tx, reason)
	default:
		return nil, &domain.ValidationError{Field: "decision", Reason: "must be APPROVE or REJECT"}
	}
}

func (s *verificationService) approve(ctx context.Context, actor Actor, tx *domain.Transaction) (*domain.Transaction, error) {
	var owner, seller *domain.User
	var createdRequests []domain.BadgeRequest

	err := s.store.RunTx(ctx, func(txs repository.Store) error {
		now := time.Now().UTC()
		if err := txs.Transactions().MarkVerified(ctx, tx.ID, now); err != nil {
			return err
		}
		tx.Status = domain.TransactionStatusVerified
		tx.VerifiedOn = &now

		var err error
		owner, err = s.rewards.Apply(ctx, txs, tx)
		if err != nil {
			return err
		}

		if tx.Kind == domain.TransactionKindPurchase {
			item, err := txs.Items().GetByID(ctx, tx.TargetID)
			if err != nil {
				return err
			}
			if err := txs.Items().MarkSold(ctx, tx.TargetID); err != nil {
				return err
			}
			seller, err = s.rewards.CreditSale(ctx, txs, item.SellerID)
			if err != nil {
				return err
			}
		}

		createdRequests, err = enqueueBadgeCandidates(ctx, txs, owner)
		if err != nil {
			return err
		}
		if seller != nil {
			sellerRequests, err := enqueueBadgeCandidates(ctx, txs, seller)
			if err != nil {
				return err
			}
			createdRequests = append(createdRequests, sellerRequests...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Verification("transaction", tx.ID, "approve", actor.ID,
		"kind", tx.Kind, "amount_mad", tx.AmountMAD, "badge_requests", len(createdRequests))

	// Notifications are best effort once the decision is committed.
	if err := s.emailSvc.SendVerificationResult(ctx, owner.Email, owner.DisplayName, tx); err != nil {
		logger.Error("Failed to send verification email", "error", err, "transaction_id", tx.ID)
	}

	return tx, nil
}

func (s *verificationService) reject(ctx context.Context, actor Actor, tx *domain.Transaction, reason string) (*domain.Transaction, error) {
	// Workflow policy: rejecting a cash donation needs a reason the
	// donor can act on; item donations and purchases may go without.
	if tx.Kind == domain.TransactionKindCashDonation && reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "required when rejecting a cash donation"}
	}

	err := s.store.RunTx(ctx, func(txs repository.Store) error {
		if err := txs.Transactions().MarkRejected(ctx, tx.ID, reason); err != nil {
			return err
		}
		if tx.Kind == domain.TransactionKindPurchase {
			// The held item goes back on the market.
			return txs.Items().Release(ctx, tx.TargetID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tx.Status = domain.TransactionStatusRejected
	tx.RejectionReason = reason
	tx.ReceiptURL = ""

	logger.Verification("transaction", tx.ID, "reject", actor.ID, "kind", tx.Kind, "reason", reason)

	if owner, err := s.store.Users().GetByID(ctx, tx.UserID); err == nil {
		if err := s.emailSvc.SendVerificationResult(ctx, owner.Email, owner.DisplayName, tx); err != nil {
			logger.Error("Failed to send verification email", "error", err, "transaction_id", tx.ID)
		}
	}

	return tx, nil
}
