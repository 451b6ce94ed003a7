// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/cart"
	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// respondError maps a service error onto the response envelope. Anything it
// does not recognise is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var stockErr *services.InsufficientStockError
	var transitionErr *models.TransitionError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))

	case errors.Is(err, services.ErrDuplicateUsername):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_USERNAME", i18n.T(lang, i18n.KeyUserDuplicateUsername), nil)
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_EMAIL", i18n.T(lang, i18n.KeyUserDuplicateEmail), nil)
	case errors.Is(err, services.ErrDuplicateCategory):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_CATEGORY", i18n.T(lang, i18n.KeyCategoryDuplicate), nil)
	case errors.Is(err, services.ErrAlreadyInWishlist):
		utils.ErrorResponse(c, http.StatusBadRequest, "ALREADY_IN_WISHLIST", i18n.T(lang, i18n.KeyWishlistAlreadyExists), nil)

	case errors.As(err, &stockErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK",
			i18n.T(lang, i18n.KeyOrderInsufficientStock, stockErr.ProductID), gin.H{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
			})
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", i18n.T(lang, i18n.KeyOrderInsufficientStock, ""), nil)

	case errors.Is(err, services.ErrInvalidPrice), errors.Is(err, cart.ErrInvalidPrice):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidPrice), nil)
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrMissingProduct):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalid), err.Error())
	case errors.Is(err, models.ErrUnknownStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), err.Error())

	case errors.As(err, &transitionErr):
		utils.ConflictResponse(c, "INVALID_TRANSITION",
			i18n.T(lang, i18n.KeyOrderInvalidTransition, transitionErr.From, transitionErr.To))

	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "category")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrNotInWishlist):
		utils.NotFoundResponse(c, "wishlist")

	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c)
	}
}

// bindJSON answers 400 itself when the body is not valid JSON for dest.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID answers 401 itself when there is no usable session.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id := utils.GetUserUUIDFromContext(c)
	if id == nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return *id, true
}

func isAdmin(c *gin.Context) bool {
	accountType, _ := utils.GetAccountTypeFromContext(c)
	return accountType == string(models.AccountTypeAdmin)
}
