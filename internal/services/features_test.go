package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
)

type orderFlowContext struct {
	db       *gorm.DB
	products map[string]*models.Product
	order    *models.Order
	err      error
}

func (c *orderFlowContext) reset() error {
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}
	c.db = db
	c.products = map[string]*models.Product{}
	c.order = nil
	c.err = nil
	return nil
}

func (c *orderFlowContext) theShippingChargeIs(charge string) error {
	_, err := NewSettingsService(c.db, nil).UpdateSettings(context.Background(), &UpdateSettingsRequest{
		ShippingCharge: decimal.RequireFromString(charge),
	})
	return err
}

func (c *orderFlowContext) aProductPricedWithStock(name, price string, stock int) error {
	product := &models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock, Images: []string{}}
	if err := c.db.Create(product).Error; err != nil {
		return err
	}
	c.products[name] = product
	return nil
}

func (c *orderFlowContext) checkout(lines map[string]int, order []string) {
	req := checkoutRequest()
	for _, name := range order {
		product := c.products[name]
		req.Products = append(req.Products, CheckoutItem{
			ProductID: product.ID,
			Quantity:  lines[name],
			Price:     product.Price,
		})
	}
	c.order, c.err = NewCheckoutService(c.db, nil, nil, nil, nil).Checkout(context.Background(), nil, req)
}

func (c *orderFlowContext) aGuestChecksOut(table *godog.Table) error {
	lines := map[string]int{}
	var order []string
	for _, row := range table.Rows[1:] {
		quantity, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		name := row.Cells[0].Value
		if _, ok := c.products[name]; !ok {
			return fmt.Errorf("unknown product %q", name)
		}
		lines[name] = quantity
		order = append(order, name)
	}
	c.checkout(lines, order)
	return nil
}

func (c *orderFlowContext) aGuestHasCheckedOut(quantity int, name string) error {
	c.checkout(map[string]int{name: quantity}, []string{name})
	return c.err
}

func (c *orderFlowContext) theCheckoutSucceeds() error {
	return c.err
}

func (c *orderFlowContext) theCheckoutFailsWithInsufficientStock() error {
	if !errors.Is(c.err, ErrInsufficientStock) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	return nil
}

func (c *orderFlowContext) theOrderTotalIs(total string) error {
	if c.order == nil {
		return errors.New("no order was placed")
	}
	if got := c.order.Total.StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *orderFlowContext) theAdminSetsTheOrderStatusTo(status string) error {
	if c.order == nil {
		return errors.New("no order was placed")
	}
	_, c.err = NewOrderService(c.db, nil).UpdateStatus(c.order.ID, &UpdateOrderStatusRequest{Status: models.OrderStatus(status)})
	return nil
}

func (c *orderFlowContext) theStatusChangeIsRejected() error {
	if !errors.Is(c.err, models.ErrInvalidTransition) {
		return fmt.Errorf("expected an invalid transition, got %v", c.err)
	}
	return nil
}

func (c *orderFlowContext) theOrderStatusIs(status string) error {
	if c.order == nil {
		return errors.New("no order was placed")
	}
	stored, err := NewOrderService(c.db, nil).GetOrder(c.order.ID)
	if err != nil {
		return err
	}
	if string(stored.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, stored.Status)
	}
	return nil
}

func (c *orderFlowContext) productHasStock(name string, stock int) error {
	var product models.Product
	if err := c.db.First(&product, "id = ?", c.products[name].ID).Error; err != nil {
		return err
	}
	if product.Stock != stock {
		return fmt.Errorf("expected %s stock %d, got %d", name, stock, product.Stock)
	}
	return nil
}

func (c *orderFlowContext) thereAreOrders(count int) error {
	var orders int64
	if err := c.db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		return err
	}
	if orders != int64(count) {
		return fmt.Errorf("expected %d orders, got %d", count, orders)
	}
	return nil
}

func InitializeOrderFlowScenario(ctx *godog.ScenarioContext) {
	tc := &orderFlowContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.db != nil {
			database.Close(tc.db)
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the shipping charge is ([\d.]+)$`, tc.theShippingChargeIs)
	ctx.Step(`^a product "([^"]*)" priced ([\d.]+) with stock (\d+)$`, tc.aProductPricedWithStock)
	ctx.Step(`^a guest has checked out (\d+) of "([^"]*)"$`, tc.aGuestHasCheckedOut)

	// When steps
	ctx.Step(`^a guest checks out:$`, tc.aGuestChecksOut)
	ctx.Step(`^the admin sets the order status to "([^"]*)"$`, tc.theAdminSetsTheOrderStatusTo)

	// Then steps
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with insufficient stock$`, tc.theCheckoutFailsWithInsufficientStock)
	ctx.Step(`^the order total is ([\d.]+)$`, tc.theOrderTotalIs)
	ctx.Step(`^the status change is rejected$`, tc.theStatusChangeIsRejected)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^product "([^"]*)" has stock (\d+)$`, tc.productHasStock)
	ctx.Step(`^there are (\d+) orders$`, tc.thereAreOrders)
}

func TestOrderFlowFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeOrderFlowScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
