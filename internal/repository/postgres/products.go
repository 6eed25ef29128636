package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit("id", "created_at").
		Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.WishlistEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", translate(err))
	}
	return &product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product: %w", translate(err))
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, pred catalog.Predicate, page *catalog.PageRequest) ([]models.Product, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Product{}).Scopes(PredicateScope(pred))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	if total == 0 || (page != nil && int64(page.Offset()) >= total) {
		return products, total, nil
	}

	query := filtered().Scopes(NewestFirst)
	if page != nil {
		query = query.Offset(page.Offset()).Limit(page.Limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]models.ProductSummary, error) {
	results := []models.ProductSummary{}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "name", "price", "images").
		Scopes(SearchScope(term), NewestFirst).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return results, nil
}

// NewestFirst orders by creation time with the id as tie-breaker so that
// page boundaries are stable between requests.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// PredicateScope renders a catalog predicate as WHERE clauses.
func PredicateScope(pred catalog.Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(pred.IncludeCategories) > 0 {
			db = db.Where("category IN ?", pred.IncludeCategories)
		}
		if len(pred.ExcludeCategories) > 0 {
			db = db.Where("category NOT IN ?", pred.ExcludeCategories)
		}
		for _, facet := range catalog.ScalarFacets {
			if values := pred.FacetValues(facet); len(values) > 0 {
				db = db.Where(string(facet)+" IN ?", values)
			}
		}
		// pq.StringArray is a driver.Valuer, so it binds as one array
		// parameter instead of being expanded into a list.
		if len(pred.Sizes) > 0 {
			db = db.Where("sizes && ?", pq.StringArray(pred.Sizes))
		}
		if len(pred.Colors) > 0 {
			db = db.Where("colors && ?", pq.StringArray(pred.Colors))
		}
		if pred.Featured != nil {
			db = db.Where("featured = ?", *pred.Featured)
		}
		if cond, args, ok := priceCondition(pred.PriceRanges); ok {
			db = db.Where(cond, args...)
		}
		return db
	}
}

func priceCondition(ranges []catalog.PriceRange) (string, []interface{}, bool) {
	if len(ranges) == 0 {
		return "", nil, false
	}
	var (
		parts []string
		args  []interface{}
	)
	for _, r := range ranges {
		var bounds []string
		if r.Min != nil {
			bounds = append(bounds, "price >= ?")
			args = append(args, *r.Min)
		}
		if r.Max != nil {
			bounds = append(bounds, "price <= ?")
			args = append(args, *r.Max)
		}
		if len(bounds) == 0 {
			// An unbounded range matches every price.
			return "", nil, false
		}
		parts = append(parts, "("+strings.Join(bounds, " AND ")+")")
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, true
}

// SearchScope matches term as a case-insensitive substring of any search
// field. LIKE metacharacters in term match literally.
func SearchScope(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(term) + "%"
	conds := make([]string, len(catalog.SearchFields))
	args := make([]interface{}, len(catalog.SearchFields))
	for i, field := range catalog.SearchFields {
		conds[i] = field + " ILIKE ?"
		args[i] = pattern
	}
	cond := "(" + strings.Join(conds, " OR ") + ")"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(cond, args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
