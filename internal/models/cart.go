// internal/models/cart.go
package models

import (
	"github.com/google/uuid"

	"github.com/javajoker/storefront-backend/internal/cart"
)

// Cart is the server-side copy of a logged-in user's cart, one row per user.
type Cart struct {
	BaseModel
	UserID uuid.UUID   `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Items  []cart.Item `json:"items" gorm:"type:text;serializer:json"`
}
