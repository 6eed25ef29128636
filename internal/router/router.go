package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/princy-boutique/storefront/internal/cache"
	"github.com/princy-boutique/storefront/internal/config"
	"github.com/princy-boutique/storefront/internal/handlers"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/middleware"
	"github.com/princy-boutique/storefront/internal/repository"
	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

// Dependencies are the long-lived collaborators built by the caller.
type Dependencies struct {
	Config *config.Config
	Store  *repository.Store
	Cache  cache.ProductCache
	Images services.ImageStore
}

// Limiters holds the per-IP limiters so the caller can run their sweepers.
type Limiters struct {
	General *middleware.RateLimiter
	Auth    *middleware.RateLimiter
}

func NewLimiters(cfg config.RateLimitConfig) Limiters {
	return Limiters{
		General: middleware.NewRateLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		Auth:    middleware.NewRateLimiter(rate.Every(time.Minute/time.Duration(max(cfg.AuthPerMinute, 1))), max(cfg.AuthPerMinute, 1)),
	}
}

func Initialize(deps Dependencies, limiters Limiters) *gin.Engine {
	cfg, store := deps.Config, deps.Store
	tokens := utils.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	// Initialize services
	uploader := services.NewImageUploader(deps.Images, cfg.Upload)
	productService := services.NewProductService(store.Products, cache.NewLoader(deps.Cache), uploader)
	cartService := services.NewCartService(store.Carts, store.Products)
	orderService := services.NewOrderService(store.Orders)
	wishlistService := services.NewWishlistService(store.Wishlists, store.Products)
	authService := services.NewAuthService(store.Users, tokens, cfg.Admin.Phones)
	reviewService := services.NewReviewService(store.Reviews)
	contactService := services.NewContactService(store.Contacts)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	authHandler := handlers.NewAuthHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService, contactService)
	healthHandler := handlers.NewHealthHandler(cfg.Store.Driver, store.Ping)

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Upload.MaxFiles+1) * cfg.Upload.MaxFileSize

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	r.GET("/health", healthHandler.Health)

	if cfg.AWS.S3Bucket == "" && strings.HasPrefix(cfg.Upload.PublicBaseURL, "/") {
		r.Static(cfg.Upload.PublicBaseURL, cfg.Upload.Dir)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.TranslatedMessage(c, http.StatusNotFound, i18n.KeyNotFound)
	})

	authRequired := middleware.AuthRequired(tokens)
	adminRequired := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	api := r.Group("/api")
	api.Use(limiters.General.Middleware())
	{
		auth := api.Group("/auth")
		auth.Use(limiters.Auth.Middleware())
		{
			auth.POST("/phone-login", authHandler.PhoneLogin)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetProduct)

			products.POST("", append(adminRequired, productHandler.CreateProduct)...)
			products.PUT("/:id", append(adminRequired, productHandler.UpdateProduct)...)
			products.DELETE("/:id", append(adminRequired, productHandler.DeleteProduct)...)
		}

		cart := api.Group("/cart")
		cart.Use(authRequired)
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("", cartHandler.AddToCart)
			cart.DELETE("/clear", cartHandler.ClearCart)
			cart.PUT("/:id", cartHandler.UpdateCartItem)
			cart.DELETE("/:id", cartHandler.RemoveCartItem)
		}

		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.PlaceOrder)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(authRequired)
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.AddReview)
			reviews.DELETE("/:id", append(adminRequired, reviewHandler.DeleteReview)...)
		}

		api.POST("/contact", reviewHandler.SendContact)
	}

	return r
}
