package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/phone-login
func (h *AuthHandler) PhoneLogin(c *gin.Context) {
	var req services.PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "")
		return
	}

	// The service trims and validates the number itself.
	resp, err := h.authService.PhoneLogin(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
