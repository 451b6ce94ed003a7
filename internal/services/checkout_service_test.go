package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/cart"
	"github.com/javajoker/storefront-backend/internal/models"
)

type fakePayments struct {
	id  string
	err error
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, order *models.Order) (string, error) {
	return f.id, f.err
}

func checkoutRequest(items ...CheckoutItem) *CheckoutRequest {
	return &CheckoutRequest{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Address:    "1 Main St",
		City:       "Springfield",
		Country:    "US",
		PostalCode: "12345",
		Products:   items,
	}
}

func line(product *models.Product, quantity int) CheckoutItem {
	return CheckoutItem{ProductID: product.ID, Quantity: quantity, Price: product.Price}
}

func TestCheckoutComputesTotalWithShipping(t *testing.T) {
	db := setupTestDB(t)
	setShipping(t, db, "5")
	p1 := createProduct(t, db, "p1", "10", 10)

	svc := NewCheckoutService(db, nil, nil, nil, nil)
	order, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(p1, 2)))
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(25)), order.Total.String())
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductName())
	assert.Equal(t, 8, stockOf(t, db, p1.ID))
}

func TestCheckoutWithoutSettingsShipsFree(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "3.50", 4)
	p2 := createProduct(t, db, "p2", "1.25", 4)

	svc := NewCheckoutService(db, nil, nil, nil, nil)
	order, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(p1, 2), line(p2, 4)))
	require.NoError(t, err)

	assert.Equal(t, "12.00", order.Total.StringFixed(2))
	assert.True(t, order.ShippingCost.IsZero())
	assert.Equal(t, 2, stockOf(t, db, p1.ID))
	assert.Equal(t, 0, stockOf(t, db, p2.ID))
}

func TestCheckoutUsesSubmittedPrice(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "10", 5)

	item := line(p1, 1)
	item.Price = decimal.RequireFromString("7.5")

	order, err := NewCheckoutService(db, nil, nil, nil, nil).Checkout(context.Background(), nil, checkoutRequest(item))
	require.NoError(t, err)
	assert.Equal(t, "7.50", order.Total.StringFixed(2))
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	plenty := createProduct(t, db, "plenty", "1", 10)
	scarce := createProduct(t, db, "scarce", "1", 1)

	svc := NewCheckoutService(db, nil, nil, nil, nil)
	_, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(plenty, 3), line(scarce, 2)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, scarce.ID, stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Requested)

	assert.Equal(t, 10, stockOf(t, db, plenty.ID))
	assert.Equal(t, 1, stockOf(t, db, scarce.ID))

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	svc := NewCheckoutService(db, nil, nil, nil, nil)
	_, err := svc.Checkout(context.Background(), nil, checkoutRequest(CheckoutItem{
		ProductID: uuid.New(),
		Quantity:  1,
		Price:     decimal.NewFromInt(1),
	}))
	assert.ErrorIs(t, err, ErrProductNotFound)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCheckoutValidation(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "1", 1)
	svc := NewCheckoutService(db, nil, nil, nil, nil)

	empty := checkoutRequest()
	_, err := svc.Checkout(context.Background(), nil, empty)
	assert.Error(t, err)

	noEmail := checkoutRequest(line(p1, 1))
	noEmail.Email = "nope"
	_, err = svc.Checkout(context.Background(), nil, noEmail)
	assert.Error(t, err)

	zeroQty := checkoutRequest(line(p1, 0))
	_, err = svc.Checkout(context.Background(), nil, zeroQty)
	assert.Error(t, err)

	negative := line(p1, 1)
	negative.Price = decimal.NewFromInt(-1)
	_, err = svc.Checkout(context.Background(), nil, checkoutRequest(negative))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	assert.Equal(t, 1, stockOf(t, db, p1.ID))
}

func TestConcurrentCheckoutOfLastUnit(t *testing.T) {
	db := setupTestDB(t)
	last := createProduct(t, db, "last", "20", 1)
	svc := NewCheckoutService(db, nil, nil, nil, nil)

	const buyers = 2
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background(), nil, checkoutRequest(line(last, 1)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrInsufficientStock)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, stockOf(t, db, last.ID))

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}

func TestCheckoutClearsLoggedInCart(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "shopper", models.AccountTypeUser)
	p1 := createProduct(t, db, "p1", "10", 3)

	carts := NewCartService(NewGormCartStore(db))
	_, err := carts.ReplaceCart(context.Background(), user.ID, &ReplaceCartRequest{Items: []cart.Item{
		{ProductID: p1.ID.String(), Name: "p1", Price: p1.Price, Quantity: 1},
	}})
	require.NoError(t, err)

	svc := NewCheckoutService(db, nil, carts, nil, nil)
	order, err := svc.Checkout(context.Background(), &user.ID, checkoutRequest(line(p1, 1)))
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)

	remaining, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining.Items)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "shopper", models.AccountTypeUser)
	p1 := createProduct(t, db, "p1", "10", 0)

	carts := NewCartService(NewGormCartStore(db))
	_, err := carts.ReplaceCart(context.Background(), user.ID, &ReplaceCartRequest{Items: []cart.Item{
		{ProductID: p1.ID.String(), Name: "p1", Price: p1.Price, Quantity: 1},
	}})
	require.NoError(t, err)

	svc := NewCheckoutService(db, nil, carts, nil, nil)
	_, err = svc.Checkout(context.Background(), &user.ID, checkoutRequest(line(p1, 1)))
	require.ErrorIs(t, err, ErrInsufficientStock)

	remaining, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, remaining.Items, 1)
}

func TestCheckoutStoresPaymentReference(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "10", 3)

	svc := NewCheckoutService(db, nil, nil, &fakePayments{id: "pi_123"}, nil)
	order, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(p1, 1)))
	require.NoError(t, err)
	assert.Equal(t, "pi_123", order.PaymentID)
}

func TestCheckoutSurvivesPaymentFailure(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "10", 3)

	svc := NewCheckoutService(db, nil, nil, &fakePayments{err: errors.New("card network down")}, nil)
	order, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(p1, 1)))
	require.NoError(t, err)
	assert.Empty(t, order.PaymentID)
	assert.Equal(t, 2, stockOf(t, db, p1.ID))
}

func TestCheckoutSendsConfirmation(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "p1", "10", 3)

	notifier := &recordingNotifier{}
	notifier.expect(1)

	svc := NewCheckoutService(db, nil, nil, nil, notifier)
	order, err := svc.Checkout(context.Background(), nil, checkoutRequest(line(p1, 1)))
	require.NoError(t, err)

	notifier.wait()
	require.Len(t, notifier.confirmations, 1)
	assert.Equal(t, order.ID, notifier.confirmations[0].ID)
	assert.Equal(t, "jane@example.com", notifier.confirmations[0].Email)
}
