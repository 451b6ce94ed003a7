// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Users
	KeyUserNotFound          = "user.not_found"
	KeyUserDuplicateUsername = "user.duplicate_username"
	KeyUserDuplicateEmail    = "user.duplicate_email"
	KeyUserDeleted           = "user.deleted"

	// Catalog
	KeyProductNotFound     = "product.not_found"
	KeyProductDeleted      = "product.deleted"
	KeyProductInvalidPrice = "product.invalid_price"
	KeyCategoryNotFound    = "category.not_found"
	KeyCategoryDuplicate   = "category.duplicate"
	KeyCategoryDeleted     = "category.deleted"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderInvalidTransition = "order.invalid_transition"
	KeyOrderInsufficientStock = "order.insufficient_stock"

	// Cart
	KeyCartCleared = "cart.cleared"
	KeyCartInvalid = "cart.invalid"

	// Wishlist
	KeyWishlistAdded         = "wishlist.added"
	KeyWishlistRemoved       = "wishlist.removed"
	KeyWishlistAlreadyExists = "wishlist.already_exists"
	KeyWishlistNotFound      = "wishlist.not_found"

	// Settings
	KeySettingsUpdated = "settings.updated"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"

	// Errors
	KeyErrorInternal = "error.internal"
)
