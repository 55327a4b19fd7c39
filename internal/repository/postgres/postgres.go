package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bridgeseed-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against either, so the verification flow can bind
// them to one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.TransactionRepository
	repository.MarketplaceItemRepository
	repository.BadgeRequestRepository
	repository.LedgerRepository
	repository.ContactRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                        db,
		UserRepository:            NewUserRepository(db),
		TransactionRepository:     NewTransactionRepository(db),
		MarketplaceItemRepository: NewMarketplaceItemRepository(db),
		BadgeRequestRepository:    NewBadgeRequestRepository(db),
		LedgerRepository:          NewLedgerRepository(db),
		ContactRepository:         NewContactRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository                 { return s.UserRepository }
func (s *Store) Transactions() repository.TransactionRepository   { return s.TransactionRepository }
func (s *Store) Items() repository.MarketplaceItemRepository      { return s.MarketplaceItemRepository }
func (s *Store) BadgeRequests() repository.BadgeRequestRepository { return s.BadgeRequestRepository }
func (s *Store) Ledger() repository.LedgerRepository              { return s.LedgerRepository }
func (s *Store) Contacts() repository.ContactRepository           { return s.ContactRepository }

// RunTx runs fn against repositories bound to a single database
// transaction. A non-nil error from fn rolls everything back, so a
// failure in any stage of a verification leaves no partial writes.
func (s *Store) RunTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{
		db:                        s.db,
		UserRepository:            NewUserRepository(tx),
		TransactionRepository:     NewTransactionRepository(tx),
		MarketplaceItemRepository: NewMarketplaceItemRepository(tx),
		BadgeRequestRepository:    NewBadgeRequestRepository(tx),
		LedgerRepository:          NewLedgerRepository(tx),
		ContactRepository:         NewContactRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
