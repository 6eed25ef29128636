package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
