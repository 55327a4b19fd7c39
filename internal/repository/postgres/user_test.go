package postgres

import (
	"context"
	"testing"
	"time"

	"bridgeseed-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_ApplyRewardDeltas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET").
			WithArgs(int64(9), int64(97), int32(0), int32(0), int32(0), "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyRewardDeltas(ctx, "user-1", 9, domain.UserStats{TotalDonated: 97})
		assert.NoError(t, err)
	})

	t.Run("MissingUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ApplyRewardDeltas(ctx, "user-404", 9, domain.UserStats{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetBadge(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("DonorColumn", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET badge_donor").
			WithArgs("Gold Donor", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetBadge(ctx, "user-1", domain.BadgeTrackDonor, "Gold Donor"))
	})

	t.Run("UnknownTrack", func(t *testing.T) {
		err := repo.SetBadge(ctx, "user-1", domain.BadgeTrack("bogus"), "x")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	cols := []string{"id", "email", "display_name", "role", "password_hash", "dps_balance",
		"total_donated", "total_items_donated", "total_sales", "total_purchases",
		"badge_donor", "badge_seller", "badge_buyer", "anonymous", "created_on", "updated_on"}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("user-1", "sara@um6p.ma", "Sara", "STUDENT", "", 50,
				500, 0, 0, 0, "Silver Donor", "None", "None", false, now, now))

	u, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), u.DPSBalance)
	assert.Equal(t, "Silver Donor", u.Badges.Donor)
	assert.Equal(t, int64(500), u.Stats.TotalDonated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadgeRequestRepository_Resolve(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBadgeRequestRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("PendingRequestResolves", func(t *testing.T) {
		mock.ExpectExec("UPDATE badge_requests SET status").
			WithArgs(string(domain.BadgeRequestStatusApproved), now, "req-1", string(domain.BadgeRequestStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Resolve(ctx, "req-1", domain.BadgeRequestStatusApproved, now))
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		mock.ExpectExec("UPDATE badge_requests SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Resolve(ctx, "req-1", domain.BadgeRequestStatusRejected, now)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
