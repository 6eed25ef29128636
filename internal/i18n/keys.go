package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"
	KeyNotFound      = "error.not_found"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Products
	KeyProductDeleted = "product.deleted"

	// Cart
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartCleared     = "cart.cleared"

	// Wishlist
	KeyWishlistRemoved = "wishlist.removed"

	// Reviews
	KeyReviewDeleted = "review.deleted"

	// Contact
	KeyContactSent = "contact.sent"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
