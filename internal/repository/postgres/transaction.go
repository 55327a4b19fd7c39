package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"

	"github.com/lib/pq"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, user_id, user_name, kind, target_id, target_name, amount_mad,
	COALESCE(item_description, ''), status, reference_code, receipt_url,
	COALESCE(rejection_reason, ''), created_on, verified_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var verifiedOn sql.NullTime
	err := row.Scan(
		&t.ID, &t.UserID, &t.UserName, &t.Kind, &t.TargetID, &t.TargetName, &t.AmountMAD,
		&t.ItemDescription, &t.Status, &t.ReferenceCode, &t.ReceiptURL,
		&t.RejectionReason, &t.CreatedOn, &verifiedOn,
	)
	if err != nil {
		return nil, err
	}
	if verifiedOn.Valid {
		t.VerifiedOn = &verifiedOn.Time
	}
	return t, nil
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. Used to retry reference-code collisions.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, user_name, kind, target_id, target_name,
	            amount_mad, item_description, status, reference_code, receipt_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
	          RETURNING created_on`
	err := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.UserID, tx.UserName, tx.Kind, tx.TargetID, tx.TargetName,
		tx.AmountMAD, nullableString(tx.ItemDescription), tx.Status, tx.ReferenceCode, tx.ReceiptURL,
	).Scan(&tx.CreatedOn)
	if err != nil && IsUniqueViolation(err) {
		return domain.ErrDuplicateReference
	}
	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, userID)
}

func (r *transactionRepository) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY created_on ASC`
	return r.list(ctx, query, domain.TransactionStatusPending)
}

func (r *transactionRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 AND created_on < $2 ORDER BY created_on ASC`
	return r.list(ctx, query, domain.TransactionStatusPending, cutoff)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}

// MarkVerified is a compare-and-set on status: only a PENDING row
// transitions, so approving twice cannot double-apply rewards.
func (r *transactionRepository) MarkVerified(ctx context.Context, id string, verifiedOn time.Time) error {
	query := `UPDATE transactions SET status = $1, verified_on = $2
	          WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query,
		domain.TransactionStatusVerified, verifiedOn, id, domain.TransactionStatusPending)
	if err != nil {
		return err
	}
	return r.requirePendingRow(ctx, res, id)
}

func (r *transactionRepository) MarkRejected(ctx context.Context, id string, reason string) error {
	query := `UPDATE transactions SET status = $1, rejection_reason = $2, receipt_url = ''
	          WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query,
		domain.TransactionStatusRejected, nullableString(reason), id, domain.TransactionStatusPending)
	if err != nil {
		return err
	}
	return r.requirePendingRow(ctx, res, id)
}

// requirePendingRow distinguishes "already resolved" from "missing"
// when a status CAS matched no rows.
func (r *transactionRepository) requirePendingRow(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return &domain.InvalidStateError{Entity: "transaction", ID: id, Want: "pending"}
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
