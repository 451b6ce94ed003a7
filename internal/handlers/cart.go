// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /api/cart
// Guests always get an empty cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := utils.GetUserUUIDFromContext(c)
	if userID == nil {
		utils.SuccessResponse(c, services.EmptyCart())
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /api/cart
// The body replaces the stored cart entirely.
func (h *CartHandler) ReplaceCart(c *gin.Context) {
	var req services.ReplaceCartRequest
	if !bindJSON(c, &req) {
		return
	}

	var cart *services.CartResponse
	var err error
	if userID := utils.GetUserUUIDFromContext(c); userID != nil {
		cart, err = h.cartService.ReplaceCart(c.Request.Context(), *userID, &req)
	} else {
		cart, err = h.cartService.PreviewCart(&req)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if userID := utils.GetUserUUIDFromContext(c); userID != nil {
		if err := h.cartService.ClearCart(c.Request.Context(), *userID); err != nil {
			respondError(c, err)
			return
		}
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}
