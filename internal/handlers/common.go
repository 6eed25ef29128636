package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/utils"
)

// currentUser writes a 401 and reports false when the context carries no
// authenticated user.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.KeyAuthRequired)
		return userID, false
	}
	return userID, true
}

// bindJSON decodes and validates the body into req, writing a 400 on
// failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "")
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		message := i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input")
		utils.ErrorResponse(c, apperr.Invalid(message, err))
		return false
	}
	return true
}
