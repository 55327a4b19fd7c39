package postgres

import (
	"context"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, user_id, points, type, transaction_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now())
	          RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Points, entry.Type, entry.TransactionID, entry.Description,
	).Scan(&entry.CreatedOn)
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]domain.LedgerEntry, int32, error) {
	query := `SELECT id, user_id, points, type, transaction_id, COALESCE(description, ''), created_on
	          FROM ledger_entries WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM ledger_entries WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Points, &e.Type, &e.TransactionID, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) HasEntryForTransaction(ctx context.Context, transactionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE transaction_id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(&exists)
	return exists, err
}
