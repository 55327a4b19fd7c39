package service

import (
	"context"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"

	"github.com/google/uuid"
)

type marketplaceService struct {
	store repository.Store
}

func NewMarketplaceService(store repository.Store) MarketplaceService {
	return &marketplaceService{store: store}
}

func (s *marketplaceService) CreateListing(ctx context.Context, actor Actor, in ListingInput) (*domain.MarketplaceItem, error) {
	if in.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if in.PriceMAD <= 0 {
		return nil, &domain.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if in.ImageURL == "" {
		return nil, &domain.ValidationError{Field: "image", Reason: "a photo of the item is required"}
	}

	seller, err := s.store.Users().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	item := &domain.MarketplaceItem{
		ID:             uuid.New().String(),
		SellerID:       seller.ID,
		SellerName:     seller.DisplayName,
		SellerWhatsApp: in.SellerWhatsApp,
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		PriceMAD:       in.PriceMAD,
		ImageURL:       in.ImageURL,
		Status:         domain.ItemStatusAvailable,
	}
	if err := s.store.Items().Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *marketplaceService) GetItem(ctx context.Context, id string) (*domain.MarketplaceItem, error) {
	return s.store.Items().GetByID(ctx, id)
}

func (s *marketplaceService) ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error) {
	return s.store.Items().ListAvailable(ctx)
}

func (s *marketplaceService) ListMyListings(ctx context.Context, actor Actor) ([]domain.MarketplaceItem, error) {
	return s.store.Items().ListBySeller(ctx, actor.ID)
}
