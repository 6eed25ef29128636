// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	BaseModel
	UserID      uuid.UUID   `json:"userId" gorm:"type:uuid;not null;index"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount float64     `json:"totalAmount" gorm:"type:numeric(12,2);not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
}

// OrderItem references the product at placement time. Price is not kept
// per line; the order total is the only price record.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Position  int       `json:"-" gorm:"not null"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relationships. Nil when the product was deleted after the order.
	Product *Product `json:"product" gorm:"foreignKey:ProductID"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
