package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/princy-boutique/storefront/internal/models"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistEntry, error) {
	entry := models.WishlistEntry{UserID: userID, ProductID: productID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		entry.Product = &product
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add wishlist entry: %w", translate(err))
	}
	return &entry, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.WishlistEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistEntry, error) {
	entries := []models.WishlistEntry{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Scopes(NewestFirst).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return entries, nil
}
