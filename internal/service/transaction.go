package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository"

	"github.com/google/uuid"
)

const minItemDescriptionLen = 5

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newReferenceCode returns a short human-reconcilable code ("BS-" plus
// six characters). Uniqueness is enforced by the store, not here.
func newReferenceCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reference code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return "BS-" + string(buf), nil
}

type transactionService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewTransactionService(store repository.Store, emailSvc EmailService) TransactionService {
	return &transactionService{store: store, emailSvc: emailSvc}
}

func (s *transactionService) SubmitCashDonation(ctx context.Context, actor Actor, in CashDonationInput) (*domain.Transaction, error) {
	if in.AmountMAD <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if in.ReceiptURL == "" {
		return nil, &domain.ValidationError{Field: "receipt", Reason: "proof of payment is required"}
	}

	user, err := s.store.Users().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		UserName:   user.DisplayName,
		Kind:       domain.TransactionKindCashDonation,
		TargetID:   in.ProjectID,
		TargetName: in.ProjectName,
		AmountMAD:  in.AmountMAD,
		Status:     domain.TransactionStatusPending,
		ReceiptURL: in.ReceiptURL,
	}
	if err := s.create(ctx, tx); err != nil {
		return nil, err
	}

	s.sendReceipt(ctx, user, tx)
	return tx, nil
}

func (s *transactionService) SubmitItemDonation(ctx context.Context, actor Actor, in ItemDonationInput) (*domain.Transaction, error) {
	if len(in.ItemDescription) < minItemDescriptionLen {
		return nil, &domain.ValidationError{Field: "item_description", Reason: fmt.Sprintf("must be at least %d characters", minItemDescriptionLen)}
	}
	if in.ReceiptURL == "" {
		return nil, &domain.ValidationError{Field: "receipt", Reason: "a photo of the items is required"}
	}
	if in.AssessedMAD < 0 {
		return nil, &domain.ValidationError{Field: "assessed_value", Reason: "must not be negative"}
	}

	user, err := s.store.Users().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		UserName:        user.DisplayName,
		Kind:            domain.TransactionKindItemDonation,
		TargetID:        in.ProjectID,
		TargetName:      in.ProjectName,
		AmountMAD:       in.AssessedMAD,
		ItemDescription: in.ItemDescription,
		Status:          domain.TransactionStatusPending,
		ReceiptURL:      in.ReceiptURL,
	}
	if err := s.create(ctx, tx); err != nil {
		return nil, err
	}

	s.sendReceipt(ctx, user, tx)
	return tx, nil
}

// InitiatePurchase holds the item and files the pending claim in one
// transaction. The hold is a compare-and-set on item status, so two
// concurrent buyers cannot both end up pending on the same item.
func (s *transactionService) InitiatePurchase(ctx context.Context, actor Actor, itemID, receiptURL string) (*domain.Transaction, error) {
	if receiptURL == "" {
		return nil, &domain.ValidationError{Field: "receipt", Reason: "proof of payment is required"}
	}

	user, err := s.store.Users().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err = s.store.RunTx(ctx, func(txs repository.Store) error {
		item, err := txs.Items().GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.SellerID == user.ID {
			return &domain.ValidationError{Field: "item", Reason: "cannot purchase your own listing"}
		}
		if err := txs.Items().HoldForPurchase(ctx, itemID, user.ID, receiptURL); err != nil {
			return err
		}

		tx = &domain.Transaction{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			UserName:   user.DisplayName,
			Kind:       domain.TransactionKindPurchase,
			TargetID:   item.ID,
			TargetName: item.Title,
			AmountMAD:  item.PriceMAD,
			Status:     domain.TransactionStatusPending,
			ReceiptURL: receiptURL,
		}
		return s.createWith(ctx, txs, tx)
	})
	if err != nil {
		return nil, err
	}

	s.sendReceipt(ctx, user, tx)
	return tx, nil
}

func (s *transactionService) ListMyTransactions(ctx context.Context, actor Actor) ([]domain.Transaction, error) {
	return s.store.Transactions().ListByUser(ctx, actor.ID)
}

func (s *transactionService) GetTransaction(ctx context.Context, actor Actor, id string) (*domain.Transaction, error) {
	tx, err := s.store.Transactions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

func (s *transactionService) create(ctx context.Context, tx *domain.Transaction) error {
	return s.createWith(ctx, s.store, tx)
}

// createWith assigns a reference code and inserts, retrying once on a
// code collision.
func (s *transactionService) createWith(ctx context.Context, store repository.Store, tx *domain.Transaction) error {
	for attempt := 0; attempt < 2; attempt++ {
		code, err := newReferenceCode()
		if err != nil {
			return err
		}
		tx.ReferenceCode = code
		err = store.Transactions().Create(ctx, tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}
	}
	return domain.ErrDuplicateReference
}

func (s *transactionService) sendReceipt(ctx context.Context, user *domain.User, tx *domain.Transaction) {
	if err := s.emailSvc.SendSubmissionReceipt(ctx, user.Email, user.DisplayName, tx); err != nil {
		logger.Error("Failed to send submission receipt", "error", err, "transaction_id", tx.ID)
	}
}
