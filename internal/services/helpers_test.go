package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
)

func setupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createProduct(t testing.TB, db *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Images: []string{"/img/" + name + ".png"},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createUser(t testing.TB, db *gorm.DB, username string, accountType models.AccountType) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		AccountType: accountType,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func setShipping(t testing.TB, db *gorm.DB, charge string) {
	t.Helper()

	settings := models.DefaultSettings()
	settings.ShippingCharge = decimal.RequireFromString(charge)
	require.NoError(t, db.Create(&settings).Error)
}

func stockOf(t testing.TB, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var product models.Product
	require.NoError(t, db.Unscoped().First(&product, "id = ?", id).Error)
	return product.Stock
}

// recordingNotifier captures notifications sent from background goroutines.
type recordingNotifier struct {
	mu            sync.Mutex
	wg            sync.WaitGroup
	confirmations []models.Order
	updates       []models.Order
}

func (n *recordingNotifier) expect(count int) {
	n.wg.Add(count)
}

func (n *recordingNotifier) wait() {
	n.wg.Wait()
}

func (n *recordingNotifier) SendOrderConfirmation(order *models.Order) error {
	defer n.wg.Done()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, *order)
	return nil
}

func (n *recordingNotifier) SendOrderStatusUpdate(order *models.Order) error {
	defer n.wg.Done()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, *order)
	return nil
}
