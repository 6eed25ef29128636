package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/catalog"
)

// SetPaginationHeaders mirrors the paginated listing counts in headers.
// Homepage listings carry no headers.
func SetPaginationHeaders(c *gin.Context, listing *catalog.Listing) {
	if listing.CurrentPage == nil {
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(listing.TotalProducts, 10))
	c.Header("X-Page", strconv.Itoa(*listing.CurrentPage))
	c.Header("X-Total-Pages", strconv.Itoa(listing.TotalPages))
}
