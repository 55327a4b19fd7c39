package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

type badgeRequestRepository struct {
	db DBTX
}

func NewBadgeRequestRepository(db DBTX) repository.BadgeRequestRepository {
	return &badgeRequestRepository{db: db}
}

const badgeRequestColumns = `id, user_id, user_name, track, badge_name, status, created_on, resolved_on`

func scanBadgeRequest(row interface{ Scan(...any) error }) (*domain.BadgeRequest, error) {
	br := &domain.BadgeRequest{}
	var resolvedOn sql.NullTime
	err := row.Scan(&br.ID, &br.UserID, &br.UserName, &br.Track, &br.BadgeName, &br.Status, &br.CreatedOn, &resolvedOn)
	if err != nil {
		return nil, err
	}
	if resolvedOn.Valid {
		br.ResolvedOn = &resolvedOn.Time
	}
	return br, nil
}

func (r *badgeRequestRepository) Create(ctx context.Context, req *domain.BadgeRequest) error {
	query := `INSERT INTO badge_requests (id, user_id, user_name, track, badge_name, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now())
	          RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		req.ID, req.UserID, req.UserName, req.Track, req.BadgeName, req.Status,
	).Scan(&req.CreatedOn)
}

func (r *badgeRequestRepository) GetByID(ctx context.Context, id string) (*domain.BadgeRequest, error) {
	query := `SELECT ` + badgeRequestColumns + ` FROM badge_requests WHERE id = $1`
	br, err := scanBadgeRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return br, err
}

func (r *badgeRequestRepository) ListPending(ctx context.Context) ([]domain.BadgeRequest, error) {
	query := `SELECT ` + badgeRequestColumns + ` FROM badge_requests WHERE status = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.BadgeRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.BadgeRequest
	for rows.Next() {
		br, err := scanBadgeRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *br)
	}
	return reqs, rows.Err()
}

func (r *badgeRequestRepository) HasPending(ctx context.Context, userID string, track domain.BadgeTrack) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM badge_requests WHERE user_id = $1 AND track = $2 AND status = $3)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, track, domain.BadgeRequestStatusPending).Scan(&exists)
	return exists, err
}

func (r *badgeRequestRepository) Resolve(ctx context.Context, id string, status domain.BadgeRequestStatus, resolvedOn time.Time) error {
	query := `UPDATE badge_requests SET status = $1, resolved_on = $2
	          WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, status, resolvedOn, id, domain.BadgeRequestStatusPending)
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
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM badge_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return &domain.InvalidStateError{Entity: "badge request", ID: id, Want: "pending"}
}
