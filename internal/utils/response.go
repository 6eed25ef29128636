package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/i18n"
)

// Context keys set by the auth middleware.
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
	ContextLang    = "lang"
)

// MessageResponse is the body of every error and of bodiless successes.
type MessageResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

func MessageJSON(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// TranslatedMessage responds with the catalogue message for key.
func TranslatedMessage(c *gin.Context, statusCode int, key string, args ...interface{}) {
	MessageJSON(c, statusCode, i18n.T(GetLangFromContext(c), key, args...))
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "request")
	}
	MessageJSON(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, key string) {
	if key == "" {
		key = i18n.KeyAuthRequired
	}
	TranslatedMessage(c, http.StatusUnauthorized, key)
}

func ForbiddenResponse(c *gin.Context) {
	TranslatedMessage(c, http.StatusForbidden, i18n.KeyAdminAccessDenied)
}

func ValidationErrorResponse(c *gin.Context, message string, errors []ValidationError) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "input")
	}
	c.JSON(http.StatusBadRequest, MessageResponse{Message: message, Errors: errors})
}

// ErrorResponse renders a service error. Internal and upstream causes are
// logged and replaced by a generic message.
func ErrorResponse(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		ValidationErrorResponse(c, apperr.PublicMessage(err), GetValidationErrors(err))
		return
	case apperr.KindInternal, apperr.KindUpstream:
		logrus.WithError(err).
			WithField("path", c.FullPath()).
			WithField("user_id", c.GetString(ContextUserID)).
			Error("Request failed")
		TranslatedMessage(c, status, i18n.KeyInternalError)
		return
	}
	MessageJSON(c, status, apperr.PublicMessage(err))
}

func GetLangFromContext(c *gin.Context) string {
	if lang := c.GetString(ContextLang); lang != "" {
		return lang
	}
	return i18n.DefaultLang
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(ContextUserID)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}

// ParseIDParam parses the named path parameter as a uuid.
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + name)
	}
	return id, nil
}
