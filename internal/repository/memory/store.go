// Package memory is an in-process store used for local development and
// tests. A single RWMutex guards every collection, which makes each
// operation atomic, including order placement.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type pairKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type Store struct {
	mu   sync.RWMutex
	now  func() time.Time
	last time.Time

	products     map[uuid.UUID]*models.Product
	users        map[uuid.UUID]*models.User
	usersByPhone map[string]uuid.UUID
	cart         map[uuid.UUID]*models.CartEntry
	cartKeys     map[pairKey]uuid.UUID
	orders       map[uuid.UUID]*models.Order
	wishlist     map[uuid.UUID]*models.WishlistEntry
	wishlistKeys map[pairKey]uuid.UUID
	reviews      map[uuid.UUID]*models.Review
	contacts     []models.ContactMessage
}

func New() *Store {
	return &Store{
		now:          time.Now,
		products:     make(map[uuid.UUID]*models.Product),
		users:        make(map[uuid.UUID]*models.User),
		usersByPhone: make(map[string]uuid.UUID),
		cart:         make(map[uuid.UUID]*models.CartEntry),
		cartKeys:     make(map[pairKey]uuid.UUID),
		orders:       make(map[uuid.UUID]*models.Order),
		wishlist:     make(map[uuid.UUID]*models.WishlistEntry),
		wishlistKeys: make(map[pairKey]uuid.UUID),
		reviews:      make(map[uuid.UUID]*models.Review),
	}
}

// NewStore returns the repositories backed by a fresh memory store.
func NewStore() *repository.Store {
	return New().Repositories()
}

func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Products:  &productRepo{s},
		Users:     &userRepo{s},
		Carts:     &cartRepo{s},
		Orders:    &orderRepo{s},
		Wishlists: &wishlistRepo{s},
		Reviews:   &reviewRepo{s},
		Contacts:  &contactRepo{s},
		Ping:      func(context.Context) error { return nil },
		Close:     func(context.Context) error { return nil },
	}
}

// tick returns a strictly increasing timestamp so that creation order is
// total even on coarse clocks. Callers hold the write lock.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

// newerFirst orders by creation time descending, then id descending.
func newerFirst(a, b models.BaseModel) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

func olderFirst(a, b models.BaseModel) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

func cloneProduct(p *models.Product) *models.Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Sizes = cloneArray(p.Sizes)
	c.Colors = cloneArray(p.Colors)
	c.Images = cloneArray(p.Images)
	return &c
}

func cloneArray(a pq.StringArray) pq.StringArray {
	out := make(pq.StringArray, len(a))
	copy(out, a)
	return out
}

func sortBy[T any](items []T, base func(T) models.BaseModel, less func(a, b models.BaseModel) bool) {
	sort.Slice(items, func(i, j int) bool {
		return less(base(items[i]), base(items[j]))
	})
}
