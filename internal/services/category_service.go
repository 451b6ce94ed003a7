// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

var categorySortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

type CategoryService struct {
	db    *gorm.DB
	cache *cache.Cache
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func NewCategoryService(db *gorm.DB, c *cache.Cache) *CategoryService {
	return &CategoryService{db: db, cache: c}
}

// ListCategories accepts sort keys name, -name, createdAt and -createdAt.
func (s *CategoryService) ListCategories(sort string) ([]models.Category, error) {
	var categories []models.Category
	order := utils.SortColumn(sort, categorySortColumns, "name asc")
	if err := s.db.Order(order).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.ensureUniqueName(req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(req.Name, id); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", req.Name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateProducts(ctx)
	return category, nil
}

// DeleteCategory leaves products that reference the category in place; they
// render as Uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	s.invalidateProducts(ctx)
	return nil
}

func (s *CategoryService) ensureUniqueName(name string, except uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, except).
		Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return ErrDuplicateCategory
	}
	return nil
}

func (s *CategoryService) invalidateProducts(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, productCachePattern); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate product cache")
	}
}
