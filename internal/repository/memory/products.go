package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(_ context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID != uuid.Nil {
		if _, ok := r.s.products[product.ID]; ok {
			return repository.ErrDuplicate
		}
	}
	product.Touch(r.s.tick())
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) Update(_ context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = r.s.tick()
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) Delete(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.products, id)

	for entryID, entry := range r.s.cart {
		if entry.ProductID == id {
			delete(r.s.cart, entryID)
			delete(r.s.cartKeys, pairKey{entry.UserID, id})
		}
	}
	for entryID, entry := range r.s.wishlist {
		if entry.ProductID == id {
			delete(r.s.wishlist, entryID)
			delete(r.s.wishlistKeys, pairKey{entry.UserID, id})
		}
	}
	return product, nil
}

func (r *productRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *productRepo) List(_ context.Context, pred catalog.Predicate, page *catalog.PageRequest) ([]models.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if pred.Matches(p) {
			matched = append(matched, p)
		}
	}
	sortBy(matched, productBase, newerFirst)

	total := int64(len(matched))
	if page != nil {
		start := page.Offset()
		if start >= len(matched) {
			matched = nil
		} else {
			end := len(matched)
			if page.Limit < end-start {
				end = start + page.Limit
			}
			matched = matched[start:end]
		}
	}

	products := make([]models.Product, 0, len(matched))
	for _, p := range matched {
		products = append(products, *cloneProduct(p))
	}
	return products, total, nil
}

func (r *productRepo) Search(_ context.Context, term string, limit int) ([]models.ProductSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Product
	for _, p := range r.s.products {
		if catalog.MatchesSearch(term, p.Name, p.Category, p.Fabric, p.Work, p.Occasion, p.Fit) {
			matched = append(matched, p)
		}
	}
	sortBy(matched, productBase, newerFirst)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	results := make([]models.ProductSummary, 0, len(matched))
	for _, p := range matched {
		results = append(results, cloneProduct(p).Summary())
	}
	return results, nil
}

func productBase(p *models.Product) models.BaseModel { return p.BaseModel }
