package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

func TestDashboardStatsEmpty(t *testing.T) {
	db := setupTestDB(t)

	stats, err := NewAdminService(db).GetDashboardStats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Len(t, stats.OrdersByStatus, 5)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin", models.AccountTypeAdmin)
	createUser(t, db, "alice", models.AccountTypeUser)
	createUser(t, db, "bob", models.AccountTypeUser)
	createProduct(t, db, "Mug", "10", 2)
	createProduct(t, db, "Lamp", "30", 50)

	orders := []models.Order{
		{Status: models.OrderStatusPending, Total: decimal.NewFromInt(25)},
		{Status: models.OrderStatusDelivered, Total: decimal.NewFromInt(40)},
		{Status: models.OrderStatusCancelled, Total: decimal.NewFromInt(99)},
	}
	for i := range orders {
		orders[i].Name = "Shopper"
		orders[i].Email = "shopper@example.com"
		orders[i].Address = "1 Main St"
		orders[i].City = "Springfield"
		orders[i].Country = "US"
		orders[i].PostalCode = "12345"
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	// an order from last month counts towards the total but not this month
	now := time.Now()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	old := models.Order{
		Name: "Shopper", Email: "shopper@example.com", Address: "1 Main St",
		City: "Springfield", Country: "US", PostalCode: "12345",
		Status: models.OrderStatusDelivered, Total: decimal.NewFromInt(50),
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).UpdateColumn("created_at", lastMonth).Error)

	stats, err := NewAdminService(db).GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockProducts)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.OrdersByStatus[models.OrderStatusDelivered])
	assert.Equal(t, int64(0), stats.OrdersByStatus[models.OrderStatusShipped])
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(115)), stats.TotalRevenue.String())
	assert.True(t, stats.MonthlyRevenue.Equal(decimal.NewFromInt(65)), stats.MonthlyRevenue.String())
	assert.InDelta(t, 30.0, stats.RevenueGrowth, 0.001)
}
