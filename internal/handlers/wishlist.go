package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AddToWishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Product not found"))
		return
	}

	entry, err := h.wishlistService.Add(c.Request.Context(), userID, productID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DELETE /wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// Unknown ids are treated like absent entries.
	if entryID, err := utils.ParseIDParam(c, "id"); err == nil {
		if err := h.wishlistService.Remove(c.Request.Context(), userID, entryID); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
	}
	utils.TranslatedMessage(c, http.StatusOK, i18n.KeyWishlistRemoved)
}
