// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type CheckoutService struct {
	db       *gorm.DB
	cache    *cache.Cache
	carts    *CartService
	payments PaymentProvider
	notifier Notifier
}

type CheckoutItem struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutRequest struct {
	Name       string         `json:"name" validate:"required,max=255"`
	Email      string         `json:"email" validate:"required,email"`
	Address    string         `json:"address" validate:"required,max=255"`
	City       string         `json:"city" validate:"required,max=100"`
	Country    string         `json:"country" validate:"required,max=100"`
	PostalCode string         `json:"postal_code" validate:"required,max=20"`
	Products   []CheckoutItem `json:"products" validate:"required,min=1,dive"`
}

// NewCheckoutService wires the post-commit collaborators. carts, payments and
// notifier may be nil.
func NewCheckoutService(db *gorm.DB, c *cache.Cache, carts *CartService, payments PaymentProvider, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		db:       db,
		cache:    c,
		carts:    carts,
		payments: payments,
		notifier: notifier,
	}
}

// Checkout places an order for the submitted lines. Order creation and stock
// reservation commit together: if any line cannot be reserved nothing is
// written. Unit prices are taken from the request as captured in the cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID *uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	for _, item := range req.Products {
		if item.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
	}

	order := &models.Order{
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Status:     models.OrderStatusPending,
	}
	for _, item := range req.Products {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		settings, err := loadSettings(tx)
		if err != nil {
			return err
		}

		order.ShippingCost = settings.ShippingCharge
		order.Total = order.Subtotal().Add(settings.ShippingCharge)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range order.Items {
			if err := reserveStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
		"items":    len(order.Items),
	}).Info("Order placed")

	s.afterCommit(ctx, userID, order)
	return s.reload(ctx, order)
}

// reserveStock decrements stock only when enough is left, so concurrent
// checkouts can never take it below zero.
func reserveStock(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return &InsufficientStockError{ProductID: productID, Requested: quantity}
}

// afterCommit runs the best-effort follow-ups. None of them can undo the
// order.
func (s *CheckoutService) afterCommit(ctx context.Context, userID *uuid.UUID, order *models.Order) {
	log := logrus.WithField("order_id", order.ID)

	if err := s.cache.DeletePattern(ctx, productCachePattern); err != nil {
		log.WithError(err).Warn("Failed to invalidate product cache")
	}

	if userID != nil && s.carts != nil {
		if err := s.carts.ClearCart(ctx, *userID); err != nil {
			log.WithError(err).Warn("Failed to clear cart after checkout")
		}
	}

	if s.payments != nil {
		paymentID, err := s.payments.CreatePaymentIntent(ctx, order)
		if err != nil {
			log.WithError(err).Warn("Failed to create payment intent")
		} else {
			order.PaymentID = paymentID
			if err := s.db.WithContext(ctx).Model(order).UpdateColumn("payment_id", paymentID).Error; err != nil {
				log.WithError(err).Warn("Failed to store payment reference")
			}
		}
	}

	if s.notifier != nil {
		confirmation := *order
		go func() {
			if err := s.notifier.SendOrderConfirmation(&confirmation); err != nil {
				log.WithError(err).Warn("Failed to send order confirmation")
			}
		}()
	}
}

func (s *CheckoutService) reload(ctx context.Context, order *models.Order) (*models.Order, error) {
	var placed models.Order
	if err := withProducts(s.db.WithContext(ctx)).First(&placed, "id = ?", order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return &placed, nil
}
