// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// GET /api/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.wishlistService.ListWishlist(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, entries)
}

// POST /api/wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.wishlistService.AddToWishlist(userID, productID); err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistAdded),
	})
}

// DELETE /api/wishlist?product_id=<id>
// The product id may also be sent as a JSON body.
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(userID, productID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistRemoved),
	})
}

func (h *WishlistHandler) productID(c *gin.Context) (uuid.UUID, bool) {
	var req services.WishlistRequest

	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "product_id"), nil)
			return uuid.Nil, false
		}
		req.ProductID = id
	} else if !bindJSON(c, &req) {
		return uuid.Nil, false
	}

	if err := utils.ValidateStruct(&req); err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return req.ProductID, true
}
