package services

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

type captured struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestNotifier(host string, sendErr error) (*NotificationService, *captured) {
	cfg := &config.Config{
		Email: config.EmailConfig{
			SMTPHost:  host,
			SMTPPort:  "2525",
			FromEmail: "orders@shop.test",
			FromName:  "Shop",
		},
		Frontend: config.FrontendConfig{BaseURL: "https://shop.test"},
	}
	svc := NewNotificationService(cfg)
	got := &captured{}
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.from, got.to, got.msg = addr, from, to, string(msg)
		return sendErr
	}
	return svc, got
}

func sampleOrder() *models.Order {
	order := &models.Order{
		Name:         "Jane",
		Email:        "jane@example.com",
		Total:        decimal.RequireFromString("25"),
		ShippingCost: decimal.RequireFromString("5"),
		Status:       models.OrderStatusShipped,
		Items: []models.OrderItem{{
			Quantity: 2,
			Price:    decimal.NewFromInt(10),
			Product:  &models.Product{Name: "Teapot"},
		}},
	}
	order.ID = uuid.New()
	return order
}

func TestOrderConfirmationEmail(t *testing.T) {
	svc, got := newTestNotifier("smtp.shop.test", nil)
	order := sampleOrder()

	require.NoError(t, svc.SendOrderConfirmation(order))
	assert.Equal(t, "smtp.shop.test:2525", got.addr)
	assert.Equal(t, "orders@shop.test", got.from)
	assert.Equal(t, []string{"jane@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Order "+order.ID.String()+" received")
	assert.Contains(t, got.msg, "Teapot")
	assert.Contains(t, got.msg, "Total: 25.00")
	assert.Contains(t, got.msg, "https://shop.test/orders/"+order.ID.String())
}

func TestOrderStatusEmail(t *testing.T) {
	svc, got := newTestNotifier("smtp.shop.test", nil)

	require.NoError(t, svc.SendOrderStatusUpdate(sampleOrder()))
	assert.Contains(t, got.msg, "is now shipped")
}

func TestEmailSkippedWithoutSMTPHost(t *testing.T) {
	svc, got := newTestNotifier("", errors.New("must not be called"))

	require.NoError(t, svc.SendOrderConfirmation(sampleOrder()))
	assert.Empty(t, got.addr)
}

func TestEmailSendFailure(t *testing.T) {
	svc, _ := newTestNotifier("smtp.shop.test", errors.New("connection refused"))

	assert.Error(t, svc.SendOrderStatusUpdate(sampleOrder()))
}

func TestNewPaymentServiceDisabledWithoutKey(t *testing.T) {
	assert.Nil(t, NewPaymentService(config.PaymentConfig{}))
	assert.NotNil(t, NewPaymentService(config.PaymentConfig{StripeSecretKey: "sk_test_x"}))
}
