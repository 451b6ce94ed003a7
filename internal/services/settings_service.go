// internal/services/settings_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/models"
)

const settingsCacheKey = "settings:" + models.SettingsScope

type SettingsService struct {
	db    *gorm.DB
	cache *cache.Cache
}

type UpdateSettingsRequest struct {
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
}

func NewSettingsService(db *gorm.DB, c *cache.Cache) *SettingsService {
	return &SettingsService{db: db, cache: c}
}

// GetSettings returns the stored settings, or zero-value defaults when none
// have been saved.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return cache.GetOrLoad(ctx, s.cache, settingsCacheKey, func(ctx context.Context) (*models.Settings, error) {
		return loadSettings(s.db.WithContext(ctx))
	})
}

// UpdateSettings replaces the settings record, creating it if needed.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*models.Settings, error) {
	if req.ShippingCharge.IsNegative() {
		return nil, ErrInvalidPrice
	}

	settings := models.DefaultSettings()
	settings.ShippingCharge = req.ShippingCharge

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"shipping_charge", "updated_at"}),
	}).Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate settings cache")
	}

	return loadSettings(s.db.WithContext(ctx))
}

// loadSettings reads the singleton through db, which may be a transaction.
func loadSettings(db *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	err := db.Where("scope = ?", models.SettingsScope).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}
