package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
}

type AddToWishlistRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
	}
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistEntry, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, storeError(err, msgProductNotFound)
	}

	entry, err := s.wishlists.Add(ctx, userID, productID)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Conflict("Already in wishlist")
	}
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	return entry, nil
}

// Remove succeeds whether or not the entry exists.
func (s *WishlistService) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	return storeError(s.wishlists.Delete(ctx, userID, entryID), "Item not found")
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistEntry, error) {
	entries, err := s.wishlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "Item not found")
	}
	if entries == nil {
		entries = []models.WishlistEntry{}
	}
	return entries, nil
}
