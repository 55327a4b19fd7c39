package service

import (
	"context"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

const defaultLeaderboardSize = 10

type userService struct {
	store repository.Store
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Users().GetByID(ctx, userID)
}

func (s *userService) SetVisibility(ctx context.Context, actor Actor, anonymous bool) error {
	return s.store.Users().UpdateVisibility(ctx, actor.ID, anonymous)
}

// Leaderboard ranks profiles by DPS balance. Users who opted out of
// public visibility still rank but are shown without a name.
func (s *userService) Leaderboard(ctx context.Context, limit int32) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	users, err := s.store.Users().TopByBalance(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Anonymous {
			users[i].DisplayName = "Anonymous"
		}
		users[i].Email = ""
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) GetPointsHistory(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.store.Ledger().ListByUser(ctx, actor.ID, pageSize, offset)
}
