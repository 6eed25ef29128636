package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(I18nMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(utils.ContextUserID),
			"is_admin": utils.IsAdminFromContext(c),
			"lang":     utils.GetLangFromContext(c),
		})
	})
	r.GET("/", handlers...)
	return r
}

func serve(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenIssuer("middleware-secret", 1)
	user := &models.User{Phone: "9876543210", IsAdmin: true}
	user.ID = uuid.New()
	token, err := tokens.Generate(user)
	require.NoError(t, err)

	r := newEngine(AuthRequired(tokens), AdminRequired())

	w := serve(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())

	w = serve(r, http.Header{"Authorization": {"Token " + token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.Header{"Authorization": {"Bearer not-a-jwt"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := utils.NewTokenIssuer("another-secret", 1)
	forged, err := other.Generate(user)
	require.NoError(t, err)
	w = serve(r, http.Header{"Authorization": {"Bearer " + forged}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.Header{"Authorization": {"Bearer " + token}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func TestAdminRequired(t *testing.T) {
	tokens := utils.NewTokenIssuer("middleware-secret", 1)
	user := &models.User{Phone: "9876543210"}
	user.ID = uuid.New()
	token, err := tokens.Generate(user)
	require.NoError(t, err)

	r := newEngine(AuthRequired(tokens), AdminRequired())
	w := serve(r, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, w.Body.String())
}

func TestPreferredLang(t *testing.T) {
	assert.Equal(t, "hi", preferredLang("hi-IN,hi;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", preferredLang("fr-FR, en-GB;q=0.5"))
	assert.Equal(t, "en", preferredLang(""))
	assert.Equal(t, "hi", preferredLang("xx, hi_IN"))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2)
	r := newEngine(limiter.Middleware())

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	w := serve(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "message")

	limiter.evictIdle(time.Now().Add(visitorIdleTimeout + time.Second))
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
}
