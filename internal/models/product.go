// internal/models/product.go
package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const UncategorizedLabel = "Uncategorized"

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Images      []string        `json:"images" gorm:"type:text;serializer:json"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CategoryID  *uuid.UUID      `json:"category_id" gorm:"type:uuid;index"`

	// Relationships. No FK constraint: a deleted category leaves the
	// reference in place.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:-"`
}

// CategoryName renders the category for display. A missing or deleted
// category is shown as Uncategorized.
func (p *Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return UncategorizedLabel
	}
	return p.Category.Name
}

// FirstImage returns the primary image reference, or "" when there is none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

// MarshalJSON adds the rendered category label next to the raw fields.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		CategoryName string `json:"category_name"`
	}{alias(p), p.CategoryName()})
}
