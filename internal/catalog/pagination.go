package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/models"
)

// PageRequest selects one page of a listing. Pages past the end are not
// clamped; they yield an empty slice.
type PageRequest struct {
	Page  int
	Limit int
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// ParsePageRequest returns nil (homepage mode) unless both page and limit
// are supplied. Supplied values must be integers >= 1.
func ParsePageRequest(values url.Values) (*PageRequest, error) {
	rawPage := strings.TrimSpace(values.Get(ParamPage))
	rawLimit := strings.TrimSpace(values.Get(ParamLimit))
	if rawPage == "" || rawLimit == "" {
		return nil, nil
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		return nil, apperr.Validation("page must be a positive integer")
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		return nil, apperr.Validation("limit must be a positive integer")
	}
	// The offset must stay representable.
	if page-1 > math.MaxInt/limit {
		return nil, apperr.Validation("page is out of range")
	}

	return &PageRequest{Page: page, Limit: limit}, nil
}

// TotalPages is ceil(total/limit); zero matches give zero pages.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total-1)/int64(limit) + 1)
}

// Listing is a catalog response. CurrentPage is omitted in homepage mode.
type Listing struct {
	Products      []models.Product `json:"products"`
	CurrentPage   *int             `json:"currentPage,omitempty"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

// NewListing applies the pagination arithmetic for either mode.
func NewListing(products []models.Product, total int64, page *PageRequest) *Listing {
	if products == nil {
		products = []models.Product{}
	}
	listing := &Listing{
		Products:      products,
		TotalProducts: total,
		TotalPages:    1,
	}
	if page != nil {
		current := page.Page
		listing.CurrentPage = &current
		listing.TotalPages = TotalPages(total, page.Limit)
	}
	return listing
}
