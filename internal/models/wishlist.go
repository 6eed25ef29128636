// internal/models/wishlist.go
package models

import "github.com/google/uuid"

type WishlistEntry struct {
	BaseModel
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_entries_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_entries_user_product"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
