// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/models"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged on the dashboard.
const LowStockThreshold = 5

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers        int64                        `json:"total_users"`
	NewUsersThisMonth int64                        `json:"new_users_this_month"`
	TotalProducts     int64                        `json:"total_products"`
	LowStockProducts  int64                        `json:"low_stock_products"`
	TotalOrders       int64                        `json:"total_orders"`
	OrdersByStatus    map[models.OrderStatus]int64 `json:"orders_by_status"`
	TotalRevenue      decimal.Decimal              `json:"total_revenue"`
	MonthlyRevenue    decimal.Decimal              `json:"monthly_revenue"`
	RevenueGrowth     float64                      `json:"revenue_growth"`
}

type statusCount struct {
	Status models.OrderStatus
	Count  int64
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats summarises customers, catalog and orders. Cancelled
// orders do not count towards revenue.
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{
		OrdersByStatus: make(map[models.OrderStatus]int64, len(models.AllowedTransitions)),
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	customers := s.db.Model(&models.User{}).Where("account_type = ?", models.AccountTypeUser)

	// User statistics
	if err := customers.Session(&gorm.Session{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := customers.Session(&gorm.Session{}).Where("created_at >= ?", monthStart).
		Count(&stats.NewUsersThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	// Catalog statistics
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Where("stock <= ?", LowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	// Order statistics
	var byStatus []statusCount
	if err := s.db.Model(&models.Order{}).Select("status, COUNT(*) AS count").
		Group("status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	for status := range models.AllowedTransitions {
		stats.OrdersByStatus[status] = 0
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
		stats.TotalOrders += row.Count
	}

	// Revenue statistics
	var err error
	if stats.TotalRevenue, err = s.revenue(time.Time{}, time.Time{}); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = s.revenue(monthStart, time.Time{}); err != nil {
		return nil, err
	}
	lastMonthRevenue, err := s.revenue(lastMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	// Growth calculations
	if lastMonthRevenue.IsPositive() {
		stats.RevenueGrowth = stats.MonthlyRevenue.Sub(lastMonthRevenue).
			Div(lastMonthRevenue).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return stats, nil
}

// revenue sums order totals created in [from, to). Zero bounds are open.
func (s *AdminService) revenue(from, to time.Time) (decimal.Decimal, error) {
	query := s.db.Model(&models.Order{}).Where("status <> ?", models.OrderStatusCancelled)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(total)").Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
