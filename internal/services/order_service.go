// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type OrderService struct {
	db       *gorm.DB
	notifier Notifier
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// withProducts preloads line products, including soft-deleted ones, so
// historical orders keep their product names.
func withProducts(db *gorm.DB) *gorm.DB {
	return db.Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders := []models.Order{}
	query := utils.ApplyPagination(withProducts(s.db).Order("created_at desc"), params)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := withProducts(s.db).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetOrderForViewer applies order visibility: admins see every order, an
// order placed by an account is visible to that account, and guest orders are
// visible to anyone holding the id. Hidden orders report ErrOrderNotFound.
func (s *OrderService) GetOrderForViewer(id uuid.UUID, viewer *uuid.UUID, admin bool) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if admin || order.UserID == nil {
		return order, nil
	}
	if viewer == nil || *viewer != *order.UserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves the order along the status table. The write is
// conditional on the status that was read, so two admins racing on the same
// order cannot both succeed from the same starting state.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.Transition(req.Status); err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", order.Status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := s.GetOrder(id)
		if err != nil {
			return nil, err
		}
		return nil, &models.TransitionError{From: current.Status, To: req.Status}
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"from":     from,
		"to":       order.Status,
	}).Info("Order status updated")

	if s.notifier != nil {
		updated := *order
		go func() {
			if err := s.notifier.SendOrderStatusUpdate(&updated); err != nil {
				logrus.WithError(err).WithField("order_id", id).Warn("Failed to send status update")
			}
		}()
	}

	return order, nil
}
