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

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Product not found"))
		return
	}

	entry, err := h.cartService.AddOrMerge(c.Request.Context(), userID, productID, quantity)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// PUT /cart/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Item not found"))
		return
	}

	var req services.UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.cartService.SetQuantity(c.Request.Context(), userID, entryID, *req.Quantity)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if entry == nil {
		utils.TranslatedMessage(c, http.StatusOK, i18n.KeyCartItemRemoved)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /cart/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Item not found"))
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, entryID); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.TranslatedMessage(c, http.StatusOK, i18n.KeyCartItemRemoved)
}

// DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.TranslatedMessage(c, http.StatusOK, i18n.KeyCartCleared)
}
