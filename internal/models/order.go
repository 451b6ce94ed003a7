// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is immutable after checkout except for Status.
type Order struct {
	BaseModel
	UserID       *uuid.UUID      `json:"user_id" gorm:"type:uuid;index"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Email        string          `json:"email" gorm:"size:255;not null;index"`
	Address      string          `json:"address" gorm:"size:255;not null"`
	City         string          `json:"city" gorm:"size:100;not null"`
	Country      string          `json:"country" gorm:"size:100;not null"`
	PostalCode   string          `json:"postal_code" gorm:"size:20;not null"`
	Items        []OrderItem     `json:"products" gorm:"foreignKey:OrderID"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	ShippingCost decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(12,2);not null;default:0"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentID    string          `json:"payment_id,omitempty" gorm:"size:255"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductName is the name of the ordered product, or "" once it is gone.
func (i *OrderItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}

// Subtotal before shipping.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}
