package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 2)
	user := &models.User{Phone: "9876543210", IsAdmin: true}
	user.ID = uuid.New()

	token, err := issuer.Generate(user)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "9876543210", claims.Phone)
	assert.True(t, claims.IsAdmin)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenIssuer_RejectsExpiredAndForeign(t *testing.T) {
	issuer := NewTokenIssuer("secret", 1)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	user := &models.User{Phone: "9876543210"}
	user.ID = uuid.New()

	expired, err := issuer.Generate(user)
	require.NoError(t, err)
	_, err = NewTokenIssuer("secret", 1).Validate(expired)
	assert.Error(t, err)

	foreign, err := NewTokenIssuer("other", 1).Generate(user)
	require.NoError(t, err)
	_, err = NewTokenIssuer("secret", 1).Validate(foreign)
	assert.Error(t, err)
}

func TestValidator_PhoneRule(t *testing.T) {
	type login struct {
		Phone string `json:"phone" validate:"required,phone"`
	}

	assert.NoError(t, ValidateStruct(login{Phone: "+919876543210"}))
	assert.NoError(t, ValidateStruct(login{Phone: "9876543"}))

	err := ValidateStruct(login{Phone: "98-76"})
	require.Error(t, err)
	errs := GetValidationErrors(apperr.Invalid("bad", err))
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
	assert.Equal(t, "phone", errs[0].Tag)

	assert.Empty(t, GetValidationErrors(errors.New("plain")))
}

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.NotFound("Product not found"), http.StatusNotFound, `{"message":"Product not found"}`},
		{apperr.Conflict("Already in wishlist"), http.StatusConflict, `{"message":"Already in wishlist"}`},
		{apperr.Validation("Cart is empty"), http.StatusBadRequest, `{"message":"Cart is empty"}`},
		{apperr.Internal("Database error", errors.New("pq: boom")), http.StatusInternalServerError, `{"message":"Internal server error"}`},
		{apperr.Upstream("Image upload failed", errors.New("s3 down")), http.StatusInternalServerError, `{"message":"Internal server error"}`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		ErrorResponse(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}

func TestSetPaginationHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetPaginationHeaders(c, catalog.NewListing(nil, 7, &catalog.PageRequest{Page: 2, Limit: 3}))
	assert.Equal(t, "7", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "3", w.Header().Get("X-Total-Pages"))
	assert.Equal(t, "2", w.Header().Get("X-Page"))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	SetPaginationHeaders(c, catalog.NewListing(nil, 7, nil))
	assert.Empty(t, w.Header().Get("X-Total-Count"))
}
