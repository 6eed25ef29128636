package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

const msgItemNotFound = "Item not found"

var errQuantityLimit = apperr.Validation(fmt.Sprintf("Quantity cannot exceed %d", models.MaxCartQuantity))

// CartService keeps one entry per (user, product); adding a product that
// is already in the cart increases its quantity.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=1000"`
}

// CartView is the cart listing with a subtotal at current prices.
type CartView struct {
	Items    []models.CartEntry `json:"items"`
	Subtotal float64            `json:"subtotal"`
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

func (s *CartService) AddOrMerge(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}
	if quantity > models.MaxCartQuantity {
		return nil, errQuantityLimit
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, storeError(err, msgProductNotFound)
	}

	// The product may vanish between the check and the upsert; the store
	// reports that as not found too.
	entry, err := s.carts.AddOrIncrement(ctx, userID, productID, quantity)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	return entry, nil
}

// SetQuantity sets an absolute quantity. Zero removes the entry and returns
// a nil entry.
func (s *CartService) SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity < 0 {
		return nil, apperr.Validation("Quantity cannot be negative")
	}
	if quantity > models.MaxCartQuantity {
		return nil, errQuantityLimit
	}
	if quantity == 0 {
		return nil, s.Remove(ctx, userID, entryID)
	}

	entry, err := s.carts.SetQuantity(ctx, userID, entryID, quantity)
	if err != nil {
		return nil, storeError(err, msgItemNotFound)
	}
	return entry, nil
}

func (s *CartService) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	return storeError(s.carts.Delete(ctx, userID, entryID), msgItemNotFound)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return storeError(s.carts.DeleteAll(ctx, userID), msgItemNotFound)
}

func (s *CartService) List(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	entries, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, msgItemNotFound)
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}

	subtotal := decimal.Zero
	for _, e := range entries {
		if e.Product == nil {
			continue
		}
		subtotal = subtotal.Add(lineAmount(e.Product.Price, e.Quantity))
	}

	return &CartView{Items: entries, Subtotal: subtotal.Round(2).InexactFloat64()}, nil
}

func lineAmount(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
