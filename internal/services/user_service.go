// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type RegisterRequest struct {
	Username    string             `json:"username" validate:"required,username"`
	Email       string             `json:"email" validate:"required,email"`
	Password    string             `json:"password" validate:"required,min=6,max=72"`
	AccountType models.AccountType `json:"account_type,omitempty" validate:"omitempty,oneof=ADMIN USER"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates an account. Only an admin caller may choose the account
// type; everyone else gets a USER account.
func (s *UserService) Register(req *RegisterRequest, callerIsAdmin bool) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existingUser models.User
	err := s.db.Unscoped().Where("username = ? OR email = ?", req.Username, req.Email).First(&existingUser).Error
	if err == nil {
		if existingUser.Username == req.Username {
			return nil, ErrDuplicateUsername
		}
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	accountType := models.AccountTypeUser
	if callerIsAdmin && req.AccountType != "" {
		accountType = req.AccountType
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		AccountType: accountType,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// duplicateUserError names the unique column a lost insert race collided on.
func (s *UserService) duplicateUserError(username string) error {
	var taken int64
	s.db.Unscoped().Model(&models.User{}).Where("username = ?", username).Count(&taken)
	if taken > 0 {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// ListCustomers returns USER accounts, newest first.
func (s *UserService) ListCustomers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("account_type = ?", models.AccountTypeUser)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("created_at desc"), params).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// DeleteUser removes the account. Orders placed by the user are kept.
func (s *UserService) DeleteUser(userID uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := s.db.Unscoped().Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if err := s.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Orders returns the orders placed by the user, including guest orders
// placed with the same email, newest first.
func (s *UserService) Orders(userID uuid.UUID) ([]models.Order, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := withProducts(s.db).
		Where("user_id = ? OR email = ?", user.ID, user.Email).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}
