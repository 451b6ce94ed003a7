// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront-backend/internal/cart"
	"github.com/javajoker/storefront-backend/internal/models"
)

// CartStore persists one cart per user. Replace is a full overwrite.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Replace(ctx context.Context, userID uuid.UUID, items []cart.Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type CartService struct {
	store CartStore
}

type ReplaceCartRequest struct {
	Items []cart.Item `json:"items"`
}

type CartResponse struct {
	Items []cart.Item `json:"items"`
	Total string      `json:"total"`
	Count int         `json:"count"`
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

func EmptyCart() *CartResponse {
	return newCartResponse(nil)
}

func newCartResponse(items []cart.Item) *CartResponse {
	if items == nil {
		items = []cart.Item{}
	}
	return &CartResponse{
		Items: items,
		Total: cart.Total(items).StringFixed(2),
		Count: len(items),
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return newCartResponse(items), nil
}

// ReplaceCart overwrites the stored cart with req.Items after merging
// duplicate lines.
func (s *CartService) ReplaceCart(ctx context.Context, userID uuid.UUID, req *ReplaceCartRequest) (*CartResponse, error) {
	items, err := cart.Normalize(req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, userID, items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return newCartResponse(items), nil
}

// PreviewCart normalizes req.Items without storing them. Guests have no
// server-side cart, so their submissions are only echoed back.
func (s *CartService) PreviewCart(req *ReplaceCartRequest) (*CartResponse, error) {
	items, err := cart.Normalize(req.Items)
	if err != nil {
		return nil, err
	}
	return newCartResponse(items), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GormCartStore keeps carts in the relational database.
type GormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

func (s *GormCartStore) Get(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	var row models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Cart{UserID: userID, Items: []cart.Item{}}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return nil, err
		}
		return []cart.Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Items, nil
}

func (s *GormCartStore) Replace(ctx context.Context, userID uuid.UUID, items []cart.Item) error {
	if items == nil {
		items = []cart.Item{}
	}
	row := models.Cart{UserID: userID, Items: items}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Replace(ctx, userID, nil)
}
