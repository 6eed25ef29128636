package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) PlaceOrder(ctx context.Context, userID uuid.UUID, assemble repository.AssembleFunc) (*models.Order, error) {
	var order *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row locks serialise concurrent checkouts of the same cart.
		var entries []models.CartEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Scopes(cartOrder).
			Find(&entries).Error
		if err != nil {
			return fmt.Errorf("failed to lock cart: %w", err)
		}
		if err := attachProducts(tx, entries); err != nil {
			return err
		}

		built, err := assemble(entries)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(built).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", translate(err))
		}
		for i := range built.Items {
			built.Items[i].OrderID = built.ID
		}
		if len(built.Items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&built.Items).Error; err != nil {
				return fmt.Errorf("failed to create order items: %w", translate(err))
			}
		}

		if len(entries) > 0 {
			ids := make([]uuid.UUID, len(entries))
			for i, e := range entries {
				ids[i] = e.ID
			}
			if err := tx.Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.CartEntry{}).Error; err != nil {
				return fmt.Errorf("failed to clear ordered cart entries: %w", err)
			}
		}

		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func attachProducts(tx *gorm.DB, entries []models.CartEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return fmt.Errorf("failed to load cart products: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range entries {
		entries[i].Product = byID[entries[i].ProductID]
	}
	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Scopes(NewestFirst).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
