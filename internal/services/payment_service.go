// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

// PaymentProvider opens a payment for a freshly placed order and returns the
// provider's payment reference.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, order *models.Order) (string, error)
}

type PaymentService struct {
	currency string
}

// NewPaymentService returns nil when no Stripe key is configured; checkout
// then skips payment intent creation.
func NewPaymentService(cfg config.PaymentConfig) *PaymentService {
	if cfg.StripeSecretKey == "" {
		return nil
	}
	stripe.Key = cfg.StripeSecretKey

	currency := cfg.Currency
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{currency: currency}
}

func (s *PaymentService) CreatePaymentIntent(ctx context.Context, order *models.Order) (string, error) {
	// Stripe amounts are in the smallest currency unit.
	amount := order.Total.Shift(2).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amount),
		Currency:     stripe.String(s.currency),
		ReceiptEmail: stripe.String(order.Email),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID.String())
	if order.UserID != nil {
		params.AddMetadata("user_id", order.UserID.String())
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, nil
}
