package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

const msgCartEmpty = "Cart is empty"

type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder turns the caller's cart into a pending order and removes the
// ordered entries in the same unit of work.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.PlaceOrder(ctx, userID, func(entries []models.CartEntry) (*models.Order, error) {
		return assembleOrder(userID, entries)
	})
	if err != nil {
		return nil, storeError(err, msgCartEmpty)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "Order not found")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// assembleOrder prices a cart snapshot at current product prices. Entries
// whose product no longer exists are left out of the order.
func assembleOrder(userID uuid.UUID, entries []models.CartEntry) (*models.Order, error) {
	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Items:  make([]models.OrderItem, 0, len(entries)),
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Product == nil {
			continue
		}
		total = total.Add(lineAmount(e.Product.Price, e.Quantity))
		order.Items = append(order.Items, models.OrderItem{
			Position:  len(order.Items),
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			Product:   e.Product,
		})
	}

	if len(order.Items) == 0 {
		return nil, apperr.Validation(msgCartEmpty)
	}

	order.TotalAmount = total.Round(2).InexactFloat64()
	return order, nil
}
