// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const productCachePattern = "products:*"

var productSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
}

type ProductService struct {
	db       *gorm.DB
	cache    *cache.Cache
	searcher catalog.Searcher
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images,omitempty" validate:"omitempty,dive,required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,dive,required"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
}

type ProductListParams struct {
	Sort       string     `json:"sort"`
	Limit      int        `json:"limit"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

func (p ProductListParams) cacheKey() string {
	category := ""
	if p.CategoryID != nil {
		category = p.CategoryID.String()
	}
	return fmt.Sprintf("products:list:%s:%d:%s", p.Sort, p.Limit, category)
}

func NewProductService(db *gorm.DB, c *cache.Cache, searcher catalog.Searcher) *ProductService {
	return &ProductService{
		db:       db,
		cache:    c,
		searcher: searcher,
	}
}

// ListProducts returns products ordered by params.Sort (default newest first).
func (s *ProductService) ListProducts(ctx context.Context, params ProductListParams) ([]models.Product, error) {
	if params.Sort == "" {
		params.Sort = "-createdAt"
	}

	return cache.GetOrLoad(ctx, s.cache, params.cacheKey(), func(ctx context.Context) ([]models.Product, error) {
		query := s.db.WithContext(ctx).Preload("Category").
			Order(utils.SortColumn(params.Sort, productSortColumns, "created_at desc"))

		if params.CategoryID != nil {
			query = query.Where("category_id = ?", *params.CategoryID)
		}
		if params.Limit > 0 {
			query = query.Limit(params.Limit)
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		return products, nil
	})
}

// BrowseProducts applies the storefront filter to the full catalog.
func (s *ProductService) BrowseProducts(ctx context.Context, filter catalog.Filter) ([]models.Product, error) {
	products, err := s.ListProducts(ctx, ProductListParams{})
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, filter), nil
}

func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]catalog.Result, error) {
	products, err := s.ListProducts(ctx, ProductListParams{})
	if err != nil {
		return nil, err
	}
	results := s.searcher.Search(products, query)
	if results == nil {
		results = []catalog.Result{}
	}
	return results, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return cache.GetOrLoad(ctx, s.cache, "products:item:"+id.String(), func(ctx context.Context) (*models.Product, error) {
		var product models.Product
		if err := s.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		return &product, nil
	})
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if err := s.ensureCategory(req.CategoryID); err != nil {
		return nil, err
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      images,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx)
	return s.reload(ctx, product.ID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}

	if err := s.db.WithContext(ctx).Omit("Category").Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx)
	return s.reload(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *ProductService) ensureCategory(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *ProductService) reload(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, productCachePattern); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate product cache")
	}
}
