package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/cache"
	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

const msgProductNotFound = "Product not found"

type ProductService struct {
	products repository.ProductRepository
	loader   *cache.Loader
	uploader *ImageUploader
}

// ProductInput carries the fields of a create or partial update. Nil fields
// are left untouched on update. Non-empty Images replace the stored set.
type ProductInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Fabric      *string  `json:"fabric" validate:"omitempty,max=100"`
	Work        *string  `json:"work" validate:"omitempty,max=100"`
	Occasion    *string  `json:"occasion" validate:"omitempty,max=100"`
	Fit         *string  `json:"fit" validate:"omitempty,max=100"`
	ReadyMade   *bool    `json:"readyMade"`
	Featured    *bool    `json:"featured"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	CustomNote  *string  `json:"customNote"`

	Images []ImageUpload `json:"-"`
}

func NewProductService(products repository.ProductRepository, loader *cache.Loader, uploader *ImageUploader) *ProductService {
	return &ProductService{
		products: products,
		loader:   loader,
		uploader: uploader,
	}
}

// ListProducts serves both the paginated and the homepage listing.
func (s *ProductService) ListProducts(ctx context.Context, values url.Values) (*catalog.Listing, error) {
	page, err := catalog.ParsePageRequest(values)
	if err != nil {
		return nil, err
	}
	pred := catalog.Compile(values)

	products, total, err := s.products.List(ctx, pred, page)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	return catalog.NewListing(products, total, page), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.loader.Product(ctx, id, s.products.FindByID)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	return product, nil
}

// Search returns at most catalog.SearchLimit summaries. Queries below the
// minimum length yield an empty result without a store round trip.
func (s *ProductService) Search(ctx context.Context, q string) ([]models.ProductSummary, error) {
	term, ok := catalog.NormalizeSearch(q)
	if !ok {
		return []models.ProductSummary{}, nil
	}

	results, err := s.products.Search(ctx, term, catalog.SearchLimit)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	if results == nil {
		results = []models.ProductSummary{}
	}
	return results, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in *ProductInput) (*models.Product, error) {
	if err := validateRequest(in, "Invalid product"); err != nil {
		return nil, err
	}
	if blank(in.Name) || blank(in.Category) || in.Price == nil {
		return nil, apperr.Validation("Name, category and price are required")
	}

	urls, err := s.uploader.Upload(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	product := &models.Product{Images: pq.StringArray(urls)}
	in.apply(product)
	product.Normalize()

	if err := s.products.Create(ctx, product); err != nil {
		s.uploader.Release(context.WithoutCancel(ctx), urls)
		return nil, storeError(err, msgProductNotFound)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, in *ProductInput) (*models.Product, error) {
	if err := validateRequest(in, "Invalid product"); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}

	if (in.Name != nil && blank(in.Name)) || (in.Category != nil && blank(in.Category)) {
		return nil, apperr.Validation("Name and category cannot be empty")
	}
	in.apply(product)
	product.Normalize()

	var replaced []string
	urls, err := s.uploader.Upload(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		replaced = product.Images
		product.Images = pq.StringArray(urls)
	}

	// Invalidate on both sides of the write so a read that missed while
	// the write was in flight cannot keep the old row cached.
	s.loader.Invalidate(ctx, id)
	if err := s.products.Update(ctx, product); err != nil {
		s.uploader.Release(context.WithoutCancel(ctx), urls)
		return nil, storeError(err, msgProductNotFound)
	}

	s.loader.Invalidate(ctx, id)
	s.uploader.Release(ctx, replaced)
	return product, nil
}

// DeleteProduct removes the product, its cart and wishlist entries and its
// stored images.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.loader.Invalidate(ctx, id)
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return storeError(err, msgProductNotFound)
	}

	s.loader.Invalidate(ctx, id)
	s.uploader.Release(ctx, deleted.Images)
	return nil
}

func (in *ProductInput) apply(p *models.Product) {
	setString(&p.Name, in.Name)
	setString(&p.Category, in.Category)
	setString(&p.Description, in.Description)
	setString(&p.Fabric, in.Fabric)
	setString(&p.Work, in.Work)
	setString(&p.Occasion, in.Occasion)
	setString(&p.Fit, in.Fit)
	setString(&p.CustomNote, in.CustomNote)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ReadyMade != nil {
		p.ReadyMade = *in.ReadyMade
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
}

func blank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
