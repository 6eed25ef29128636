package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type cartRepo struct {
	s *Store
}

func (r *cartRepo) AddOrIncrement(_ context.Context, userID, productID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity > models.MaxCartQuantity {
		return nil, repository.ErrQuantityLimit
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[productID]; !ok {
		return nil, repository.ErrNotFound
	}

	key := pairKey{userID, productID}
	if id, ok := r.s.cartKeys[key]; ok {
		entry := r.s.cart[id]
		if entry.Quantity > models.MaxCartQuantity-quantity {
			return nil, repository.ErrQuantityLimit
		}
		entry.Quantity += quantity
		entry.UpdatedAt = r.s.tick()
		return r.s.cartView(entry), nil
	}

	entry := &models.CartEntry{UserID: userID, ProductID: productID, Quantity: quantity}
	entry.Touch(r.s.tick())
	r.s.cart[entry.ID] = entry
	r.s.cartKeys[key] = entry.ID
	return r.s.cartView(entry), nil
}

func (r *cartRepo) SetQuantity(_ context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.cart[entryID]
	if !ok || entry.UserID != userID {
		return nil, repository.ErrNotFound
	}
	entry.Quantity = quantity
	entry.UpdatedAt = r.s.tick()
	return r.s.cartView(entry), nil
}

func (r *cartRepo) Delete(_ context.Context, userID, entryID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.cart[entryID]
	if !ok || entry.UserID != userID {
		return repository.ErrNotFound
	}
	r.s.removeCartEntry(entry)
	return nil
}

func (r *cartRepo) DeleteAll(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, entry := range r.s.cart {
		if entry.UserID == userID {
			r.s.removeCartEntry(entry)
		}
	}
	return nil
}

func (r *cartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := r.s.userCart(userID)
	out := make([]models.CartEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *r.s.cartView(e))
	}
	return out, nil
}

// userCart returns the user's entries oldest first. Callers hold a lock.
func (s *Store) userCart(userID uuid.UUID) []*models.CartEntry {
	var entries []*models.CartEntry
	for _, e := range s.cart {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sortBy(entries, func(e *models.CartEntry) models.BaseModel { return e.BaseModel }, olderFirst)
	return entries
}

func (s *Store) cartView(entry *models.CartEntry) *models.CartEntry {
	view := *entry
	view.Product = cloneProduct(s.products[entry.ProductID])
	return &view
}

func (s *Store) removeCartEntry(entry *models.CartEntry) {
	delete(s.cart, entry.ID)
	delete(s.cartKeys, pairKey{entry.UserID, entry.ProductID})
}

type orderRepo struct {
	s *Store
}

func (r *orderRepo) PlaceOrder(_ context.Context, userID uuid.UUID, assemble repository.AssembleFunc) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.userCart(userID)
	entries := make([]models.CartEntry, 0, len(snapshot))
	for _, e := range snapshot {
		entries = append(entries, *r.s.cartView(e))
	}

	order, err := assemble(entries)
	if err != nil {
		return nil, err
	}

	order.Touch(r.s.tick())
	stored := *order
	stored.Items = make([]models.OrderItem, len(order.Items))
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		stored.Items[i] = order.Items[i]
		stored.Items[i].Product = nil
	}
	r.s.orders[order.ID] = &stored

	for _, e := range snapshot {
		r.s.removeCartEntry(e)
	}
	return order, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	sortBy(matched, func(o *models.Order) models.BaseModel { return o.BaseModel }, newerFirst)

	orders := make([]models.Order, 0, len(matched))
	for _, o := range matched {
		view := *o
		view.Items = make([]models.OrderItem, len(o.Items))
		for i, item := range o.Items {
			item.Product = cloneProduct(r.s.products[item.ProductID])
			view.Items[i] = item
		}
		orders = append(orders, view)
	}
	return orders, nil
}

type wishlistRepo struct {
	s *Store
}

func (r *wishlistRepo) Add(_ context.Context, userID, productID uuid.UUID) (*models.WishlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product, ok := r.s.products[productID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	key := pairKey{userID, productID}
	if _, ok := r.s.wishlistKeys[key]; ok {
		return nil, repository.ErrDuplicate
	}

	entry := &models.WishlistEntry{UserID: userID, ProductID: productID}
	entry.Touch(r.s.tick())
	r.s.wishlist[entry.ID] = entry
	r.s.wishlistKeys[key] = entry.ID

	view := *entry
	view.Product = cloneProduct(product)
	return &view, nil
}

func (r *wishlistRepo) Delete(_ context.Context, userID, entryID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry, ok := r.s.wishlist[entryID]; ok && entry.UserID == userID {
		delete(r.s.wishlist, entryID)
		delete(r.s.wishlistKeys, pairKey{userID, entry.ProductID})
	}
	return nil
}

func (r *wishlistRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.WishlistEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.WishlistEntry
	for _, e := range r.s.wishlist {
		if e.UserID == userID {
			matched = append(matched, e)
		}
	}
	sortBy(matched, func(e *models.WishlistEntry) models.BaseModel { return e.BaseModel }, newerFirst)

	entries := make([]models.WishlistEntry, 0, len(matched))
	for _, e := range matched {
		view := *e
		view.Product = cloneProduct(r.s.products[e.ProductID])
		entries = append(entries, view)
	}
	return entries, nil
}
