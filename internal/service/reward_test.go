package service

import (
	"context"
	"testing"

	"bridgeseed-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPointsForAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{97, 9},
		{100, 10},
		{10, 1},
		{9, 0},
		{0, 0},
		{-50, 0},
		{1000, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsForAmount(tt.amount), "amount %d", tt.amount)
	}
}

func TestRewardEngineApply_CashDonation(t *testing.T) {
	store := newMockStore()
	engine := RewardEngine{}

	tx := &domain.Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Kind:          domain.TransactionKindCashDonation,
		AmountMAD:     97,
		ReferenceCode: "BS-ABC123",
		Status:        domain.TransactionStatusVerified,
	}
	updated := &domain.User{ID: "user-1", DPSBalance: 9, Stats: domain.UserStats{TotalDonated: 97}}

	store.ledger.On("HasEntryForTransaction", mock.Anything, "tx-1").Return(false, nil)
	store.users.On("ApplyRewardDeltas", mock.Anything, "user-1", int64(9),
		domain.UserStats{TotalDonated: 97}).Return(nil)
	store.ledger.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e.UserID == "user-1" && e.Points == 9 &&
			e.Type == domain.LedgerEntryDonationReward &&
			e.TransactionID != nil && *e.TransactionID == "tx-1"
	})).Return(nil)
	store.users.On("GetByID", mock.Anything, "user-1").Return(updated, nil)

	user, err := engine.Apply(context.Background(), store, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.DPSBalance)
	store.assertExpectations(t)
}

func TestRewardEngineApply_ItemDonationEarnsNoPoints(t *testing.T) {
	store := newMockStore()
	engine := RewardEngine{}

	tx := &domain.Transaction{
		ID:     "tx-2",
		UserID: "user-1",
		Kind:   domain.TransactionKindItemDonation,
		Status: domain.TransactionStatusVerified,
	}
	updated := &domain.User{ID: "user-1", Stats: domain.UserStats{TotalItemsDonated: 1}}

	store.ledger.On("HasEntryForTransaction", mock.Anything, "tx-2").Return(false, nil)
	store.users.On("ApplyRewardDeltas", mock.Anything, "user-1", int64(0),
		domain.UserStats{TotalItemsDonated: 1}).Return(nil)
	store.users.On("GetByID", mock.Anything, "user-1").Return(updated, nil)

	user, err := engine.Apply(context.Background(), store, tx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), user.Stats.TotalItemsDonated)
	// No ledger entry for zero points
	store.ledger.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	store.assertExpectations(t)
}

func TestRewardEngineApply_PurchaseCountsForBuyer(t *testing.T) {
	store := newMockStore()
	engine := RewardEngine{}

	tx := &domain.Transaction{
		ID:        "tx-3",
		UserID:    "buyer-1",
		Kind:      domain.TransactionKindPurchase,
		AmountMAD: 250,
		Status:    domain.TransactionStatusVerified,
	}
	updated := &domain.User{ID: "buyer-1", Stats: domain.UserStats{TotalPurchases: 1}}

	store.ledger.On("HasEntryForTransaction", mock.Anything, "tx-3").Return(false, nil)
	store.users.On("ApplyRewardDeltas", mock.Anything, "buyer-1", int64(0),
		domain.UserStats{TotalPurchases: 1}).Return(nil)
	store.users.On("GetByID", mock.Anything, "buyer-1").Return(updated, nil)

	_, err := engine.Apply(context.Background(), store, tx)
	require.NoError(t, err)
	store.assertExpectations(t)
}

func TestRewardEngineApply_RefusesDoubleReward(t *testing.T) {
	store := newMockStore()
	engine := RewardEngine{}

	tx := &domain.Transaction{ID: "tx-1", UserID: "user-1", Kind: domain.TransactionKindCashDonation, AmountMAD: 100}
	store.ledger.On("HasEntryForTransaction", mock.Anything, "tx-1").Return(true, nil)

	_, err := engine.Apply(context.Background(), store, tx)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	store.users.AssertNotCalled(t, "ApplyRewardDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRewardEngineCreditSale(t *testing.T) {
	store := newMockStore()
	engine := RewardEngine{}

	seller := &domain.User{ID: "seller-1", Stats: domain.UserStats{TotalSales: 5}}
	store.users.On("ApplyRewardDeltas", mock.Anything, "seller-1", int64(0),
		domain.UserStats{TotalSales: 1}).Return(nil)
	store.users.On("GetByID", mock.Anything, "seller-1").Return(seller, nil)

	got, err := engine.CreditSale(context.Background(), store, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, int32(5), got.Stats.TotalSales)
	store.assertExpectations(t)
}
