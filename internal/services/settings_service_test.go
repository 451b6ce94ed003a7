package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

func TestGetSettingsDefaultsToZero(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t), nil)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.ShippingCharge.IsZero())
}

func TestUpdateSettingsUpserts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db, nil)
	ctx := context.Background()

	_, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{ShippingCharge: decimal.RequireFromString("4.99")})
	require.NoError(t, err)
	updated, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{ShippingCharge: decimal.RequireFromString("7.5")})
	require.NoError(t, err)
	assert.Equal(t, "7.50", updated.ShippingCharge.StringFixed(2))

	var rows int64
	require.NoError(t, db.Model(&models.Settings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	read, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7.50", read.ShippingCharge.StringFixed(2))
}

func TestUpdateSettingsRejectsNegative(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t), nil)

	_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsRequest{ShippingCharge: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCheckoutSeesUpdatedShipping(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, err := NewSettingsService(db, nil).UpdateSettings(ctx, &UpdateSettingsRequest{ShippingCharge: decimal.NewFromInt(3)})
	require.NoError(t, err)

	p := createProduct(t, db, "p", "2", 5)
	order, err := NewCheckoutService(db, nil, nil, nil, nil).Checkout(ctx, nil, checkoutRequest(line(p, 2)))
	require.NoError(t, err)
	assert.Equal(t, "7.00", order.Total.StringFixed(2))
}
