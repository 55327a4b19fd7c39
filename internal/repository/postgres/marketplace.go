package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

type marketplaceItemRepository struct {
	db DBTX
}

func NewMarketplaceItemRepository(db DBTX) repository.MarketplaceItemRepository {
	return &marketplaceItemRepository{db: db}
}

const itemColumns = `id, seller_id, seller_name, seller_whatsapp, title, description, category,
	price_mad, image_url, status, COALESCE(buyer_id, ''), COALESCE(receipt_url, ''), created_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.MarketplaceItem, error) {
	it := &domain.MarketplaceItem{}
	err := row.Scan(
		&it.ID, &it.SellerID, &it.SellerName, &it.SellerWhatsApp, &it.Title, &it.Description,
		&it.Category, &it.PriceMAD, &it.ImageURL, &it.Status, &it.BuyerID, &it.ReceiptURL, &it.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *marketplaceItemRepository) Create(ctx context.Context, item *domain.MarketplaceItem) error {
	query := `INSERT INTO marketplace_items (id, seller_id, seller_name, seller_whatsapp, title,
	            description, category, price_mad, image_url, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	          RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		item.ID, item.SellerID, item.SellerName, item.SellerWhatsApp, item.Title,
		item.Description, item.Category, item.PriceMAD, item.ImageURL, item.Status,
	).Scan(&item.CreatedOn)
}

func (r *marketplaceItemRepository) GetByID(ctx context.Context, id string) (*domain.MarketplaceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM marketplace_items WHERE id = $1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return it, err
}

func (r *marketplaceItemRepository) ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM marketplace_items WHERE status = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, domain.ItemStatusAvailable)
}

func (r *marketplaceItemRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.MarketplaceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM marketplace_items WHERE seller_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, sellerID)
}

func (r *marketplaceItemRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.MarketplaceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM marketplace_items WHERE status = $1 AND created_on < $2`
	return r.list(ctx, query, domain.ItemStatusPending, cutoff)
}

func (r *marketplaceItemRepository) list(ctx context.Context, query string, args ...any) ([]domain.MarketplaceItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MarketplaceItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// HoldForPurchase is the mutual-exclusion point: the status predicate
// guarantees at most one pending purchase per item.
func (r *marketplaceItemRepository) HoldForPurchase(ctx context.Context, id, buyerID, receiptURL string) error {
	query := `UPDATE marketplace_items SET status = $1, buyer_id = $2, receipt_url = $3
	          WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query,
		domain.ItemStatusPending, buyerID, receiptURL, id, domain.ItemStatusAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM marketplace_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return &domain.ConflictError{Entity: "marketplace item", ID: id}
}

func (r *marketplaceItemRepository) MarkSold(ctx context.Context, id string) error {
	query := `UPDATE marketplace_items SET status = $1 WHERE id = $2 AND status = $3`
	return r.transition(ctx, query, id, domain.ItemStatusSold, domain.ItemStatusPending)
}

func (r *marketplaceItemRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE marketplace_items SET status = $1, buyer_id = NULL, receipt_url = NULL
	          WHERE id = $2 AND status = $3`
	return r.transition(ctx, query, id, domain.ItemStatusAvailable, domain.ItemStatusPending)
}

func (r *marketplaceItemRepository) transition(ctx context.Context, query, id string, to, from domain.ItemStatus) error {
	res, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.InvalidStateError{Entity: "marketplace item", ID: id, Want: string(from)}
	}
	return nil
}
