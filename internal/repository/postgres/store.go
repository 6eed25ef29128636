// Package postgres implements the repository contracts on PostgreSQL
// through GORM. The schema is owned by the migrations in
// internal/database.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/princy-boutique/storefront/internal/database"
	"github.com/princy-boutique/storefront/internal/repository"
)

func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Products:  NewProductRepository(db),
		Users:     NewUserRepository(db),
		Carts:     NewCartRepository(db),
		Orders:    NewOrderRepository(db),
		Wishlists: NewWishlistRepository(db),
		Reviews:   NewReviewRepository(db),
		Contacts:  NewContactRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func(context.Context) error {
			return database.Close(db)
		},
	}
}
