// internal/models/settings.go
package models

import (
	"github.com/shopspring/decimal"
)

const SettingsScope = "default"

// Settings is a singleton row located by Scope.
type Settings struct {
	BaseModel
	Scope          string          `json:"-" gorm:"uniqueIndex;size:50;not null"`
	ShippingCharge decimal.Decimal `json:"shipping_charge" gorm:"type:decimal(12,2);not null;default:0"`
}

func DefaultSettings() Settings {
	return Settings{Scope: SettingsScope, ShippingCharge: decimal.Zero}
}
