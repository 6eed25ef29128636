// internal/models/cart.go
package models

import "github.com/google/uuid"

// MaxCartQuantity caps the quantity of a single cart entry, merges
// included.
const MaxCartQuantity = 1000

// CartEntry is one line of a user's cart. The ledger holds at most one
// entry per (user, product).
type CartEntry struct {
	BaseModel
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_entries_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_entries_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
