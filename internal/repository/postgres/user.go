package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, display_name, role, COALESCE(password_hash, ''), dps_balance,
	total_donated, total_items_donated, total_sales, total_purchases,
	badge_donor, badge_seller, badge_buyer, anonymous, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.PasswordHash, &u.DPSBalance,
		&u.Stats.TotalDonated, &u.Stats.TotalItemsDonated, &u.Stats.TotalSales, &u.Stats.TotalPurchases,
		&u.Badges.Donor, &u.Badges.Seller, &u.Badges.Buyer, &u.Anonymous, &createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, display_name, role, password_hash, dps_balance,
	            total_donated, total_items_donated, total_sales, total_purchases,
	            badge_donor, badge_seller, badge_buyer, anonymous, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, 0, $6, $7, $8, $9, now(), now())`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.Role, user.PasswordHash,
		user.Badges.Donor, user.Badges.Seller, user.Badges.Buyer, user.Anonymous)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) UpdateVisibility(ctx context.Context, id string, anonymous bool) error {
	query := `UPDATE users SET anonymous = $1, updated_on = now() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, anonymous, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *userRepository) ApplyRewardDeltas(ctx context.Context, id string, points int64, stats domain.UserStats) error {
	query := `UPDATE users SET
	            dps_balance = dps_balance + $1,
	            total_donated = total_donated + $2,
	            total_items_donated = total_items_donated + $3,
	            total_sales = total_sales + $4,
	            total_purchases = total_purchases + $5,
	            updated_on = now()
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		points, stats.TotalDonated, stats.TotalItemsDonated, stats.TotalSales, stats.TotalPurchases, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *userRepository) SetBadge(ctx context.Context, id string, track domain.BadgeTrack, badgeName string) error {
	var column string
	switch track {
	case domain.BadgeTrackDonor:
		column = "badge_donor"
	case domain.BadgeTrackSeller:
		column = "badge_seller"
	case domain.BadgeTrackBuyer:
		column = "badge_buyer"
	default:
		return fmt.Errorf("unknown badge track: %s", track)
	}
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_on = now() WHERE id = $2`, column)
	res, err := r.db.ExecContext(ctx, query, badgeName, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *userRepository) TopByBalance(ctx context.Context, limit int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY dps_balance DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	rows, err := r.db.QueryContext(ctx, query, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
