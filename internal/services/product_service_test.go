package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/models"
)

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil, catalog.DefaultSearcher())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateProductRequest{Name: "Free money", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(ctx, &CreateProductRequest{Name: "Negative", Price: decimal.NewFromInt(1), Stock: -1})
	assert.Error(t, err)

	_, err = svc.CreateProduct(ctx, &CreateProductRequest{Price: decimal.NewFromInt(1)})
	assert.Error(t, err)

	missing := uuid.New()
	_, err = svc.CreateProduct(ctx, &CreateProductRequest{Name: "Lost", Price: decimal.NewFromInt(1), CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	created, err := svc.CreateProduct(ctx, &CreateProductRequest{Name: "Mug", Price: decimal.RequireFromString("9.99"), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "9.99", created.Price.StringFixed(2))
	assert.NotNil(t, created.Images)
	assert.Equal(t, models.UncategorizedLabel, created.CategoryName())
}

func TestListProducts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewProductService(db, nil, catalog.DefaultSearcher())

	hats := &models.Category{Name: "Hats"}
	require.NoError(t, db.Create(hats).Error)

	cheap := createProduct(t, db, "cheap", "1", 1)
	mid := createProduct(t, db, "mid", "5", 1)
	createProduct(t, db, "dear", "50", 1)
	require.NoError(t, db.Model(cheap).Update("created_at", time.Now().Add(-2*time.Hour)).Error)
	require.NoError(t, db.Model(mid).Updates(map[string]interface{}{
		"created_at":  time.Now().Add(-time.Hour),
		"category_id": hats.ID,
	}).Error)

	latest, err := svc.ListProducts(ctx, ProductListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dear", "mid", "cheap"}, productNames(latest))

	byPrice, err := svc.ListProducts(ctx, ProductListParams{Sort: "price"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "mid", "dear"}, productNames(byPrice))

	limited, err := svc.ListProducts(ctx, ProductListParams{Sort: "-price", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"dear", "mid"}, productNames(limited))

	inHats, err := svc.ListProducts(ctx, ProductListParams{CategoryID: &hats.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"mid"}, productNames(inHats))
	assert.Equal(t, "Hats", inHats[0].CategoryName())
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewProductService(db, nil, catalog.DefaultSearcher())
	product := createProduct(t, db, "lamp", "20", 4)

	name := "desk lamp"
	stock := 0
	updated, err := svc.UpdateProduct(ctx, product.ID, &UpdateProductRequest{
		Name:   &name,
		Stock:  &stock,
		Images: []string{"/a.png", "/b.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "desk lamp", updated.Name)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, []string{"/a.png", "/b.png"}, updated.Images)
	assert.Equal(t, "20.00", updated.Price.StringFixed(2))

	negative := decimal.NewFromInt(-5)
	_, err = svc.UpdateProduct(ctx, product.ID, &UpdateProductRequest{Price: &negative})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.UpdateProduct(ctx, uuid.New(), &UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewProductService(db, nil, catalog.DefaultSearcher())
	product := createProduct(t, db, "gone", "1", 1)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err := svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), ErrProductNotFound)
}

func TestBrowseAndSearchProducts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewProductService(db, nil, catalog.DefaultSearcher())

	createProduct(t, db, "Running Shoe", "80", 3)
	createProduct(t, db, "Leather Boot", "120", 0)
	createProduct(t, db, "Wool Hat", "25", 5)

	inStock, err := svc.BrowseProducts(ctx, catalog.Filter{Stock: catalog.StockInStock, Sort: catalog.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Running Shoe", "Wool Hat"}, productNames(inStock))

	results, err := svc.SearchProducts(ctx, "runing shoe")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Running Shoe", results[0].Product.Name)

	none, err := svc.SearchProducts(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
