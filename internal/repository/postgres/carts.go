package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// mergeOnConflict turns a duplicate (user_id, product_id) insert into an
// in-place increment. A merge past the cap updates no row.
var mergeOnConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
	DoUpdates: clause.Assignments(map[string]interface{}{
		"quantity":   gorm.Expr("cart_entries.quantity + excluded.quantity"),
		"updated_at": gorm.Expr("excluded.updated_at"),
	}),
	Where: clause.Where{Exprs: []clause.Expression{
		clause.Expr{SQL: "cart_entries.quantity + excluded.quantity <= ?", Vars: []interface{}{models.MaxCartQuantity}},
	}},
}

func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity > models.MaxCartQuantity {
		return nil, repository.ErrQuantityLimit
	}
	var merged models.CartEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := models.CartEntry{UserID: userID, ProductID: productID, Quantity: quantity}
		result := tx.Clauses(mergeOnConflict).Create(&entry)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrQuantityLimit
		}
		return tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&merged).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cart entry: %w", translate(err))
	}
	return &merged, nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CartEntry{}).
			Where("id = ? AND user_id = ?", entryID, userID).
			Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Product").First(&entry, "id = ?", entryID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart entry: %w", translate(err))
	}
	return &entry, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.CartEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CartRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	entries := []models.CartEntry{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Scopes(cartOrder).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return entries, nil
}

func cartOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
