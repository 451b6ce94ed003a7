// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

type WishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// WishlistEntry is a wishlist row joined with its product for display.
type WishlistEntry struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// ListWishlist returns the user's saved products. Entries whose product has
// been deleted are skipped.
func (s *WishlistService) ListWishlist(userID uuid.UUID) ([]WishlistEntry, error) {
	var items []models.WishlistItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		entries = append(entries, WishlistEntry{
			ID:    item.Product.ID,
			Name:  item.Product.Name,
			Price: item.Product.Price,
			Image: item.Product.FirstImage(),
		})
	}
	return entries, nil
}

func (s *WishlistService) AddToWishlist(userID, productID uuid.UUID) error {
	var products int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&products).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if products == 0 {
		return ErrProductNotFound
	}

	var existing int64
	if err := s.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return ErrAlreadyInWishlist
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

func (s *WishlistService) RemoveFromWishlist(userID, productID uuid.UUID) error {
	result := s.db.Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotInWishlist
	}
	return nil
}
