package memory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

func seedProduct(t *testing.T, store *repository.Store, name, category string, price float64, sizes ...string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Category: category, Price: price, Sizes: pq.StringArray(sizes)}
	p.Normalize()
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}

func TestTick_IsStrictlyIncreasing(t *testing.T) {
	s := New()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first := s.tick()
	second := s.tick()
	assert.True(t, second.After(first))
}

func TestProducts_ListNewestFirstAndPages(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	a := seedProduct(t, store, "A", "Saree", 1000)
	b := seedProduct(t, store, "B", "Saree", 2000)
	c := seedProduct(t, store, "C", "Kurti", 3000)

	products, total, err := store.Products.List(ctx, catalog.Predicate{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 3)
	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, []uuid.UUID{products[0].ID, products[1].ID, products[2].ID})

	products, total, err = store.Products.List(ctx, catalog.Predicate{}, &catalog.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 1)
	assert.Equal(t, a.ID, products[0].ID)

	products, _, err = store.Products.List(ctx, catalog.Predicate{}, &catalog.PageRequest{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)

	products, total, err = store.Products.List(ctx, catalog.Predicate{IncludeCategories: []string{"Kurti"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, c.ID, products[0].ID)
}

func TestProducts_ReturnedCopiesAreIsolated(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000, "M")

	got, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got.Sizes[0] = "XXL"
	got.Name = "changed"

	again, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
	assert.Equal(t, pq.StringArray{"M"}, again.Sizes)
}

func TestProducts_UpdateKeepsCreatedAt(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	created := p.CreatedAt

	update := *p
	update.Price = 1200
	update.CreatedAt = time.Time{}
	require.NoError(t, store.Products.Update(ctx, &update))

	got, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Price)
	assert.Equal(t, created, got.CreatedAt)

	missing := models.Product{Name: "x"}
	missing.ID = uuid.New()
	assert.ErrorIs(t, store.Products.Update(ctx, &missing), repository.ErrNotFound)
}

func TestProducts_Search(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedProduct(t, store, "Banarasi Silk", "Saree", 9000)
	for i := 0; i < 10; i++ {
		seedProduct(t, store, "Cotton Kurti", "Kurti", 800)
	}

	results, err := store.Products.Search(ctx, "SILK", catalog.SearchLimit)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Banarasi Silk", results[0].Name)

	results, err = store.Products.Search(ctx, "kurti", catalog.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, results, catalog.SearchLimit)

	results, err = store.Products.Search(ctx, "zz", catalog.SearchLimit)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCart_ConcurrentAddsMergeIntoOneEntry(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	userID := uuid.New()

	const adders = 50
	var wg sync.WaitGroup
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Carts.AddOrIncrement(ctx, userID, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := store.Carts.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, adders, entries[0].Quantity)
}

func TestCart_MergeStopsAtQuantityCap(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	userID := uuid.New()

	_, err := store.Carts.AddOrIncrement(ctx, userID, p.ID, math.MaxInt)
	assert.ErrorIs(t, err, repository.ErrQuantityLimit)

	_, err = store.Carts.AddOrIncrement(ctx, userID, p.ID, models.MaxCartQuantity-1)
	require.NoError(t, err)
	entry, err := store.Carts.AddOrIncrement(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MaxCartQuantity, entry.Quantity)

	_, err = store.Carts.AddOrIncrement(ctx, userID, p.ID, 1)
	assert.ErrorIs(t, err, repository.ErrQuantityLimit)

	entries, err := store.Carts.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MaxCartQuantity, entries[0].Quantity)
}

func TestCart_UnknownProductAndOwnership(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	owner, other := uuid.New(), uuid.New()

	_, err := store.Carts.AddOrIncrement(ctx, owner, uuid.New(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entry, err := store.Carts.AddOrIncrement(ctx, owner, p.ID, 1)
	require.NoError(t, err)

	_, err = store.Carts.SetQuantity(ctx, other, entry.ID, 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Carts.Delete(ctx, other, entry.ID), repository.ErrNotFound)

	require.NoError(t, store.Carts.DeleteAll(ctx, other))
	entries, err := store.Carts.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOrders_PlaceOrderSnapshotsAndClears(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p1 := seedProduct(t, store, "P1", "Kurti", 500)
	p2 := seedProduct(t, store, "P2", "Saree", 1500)
	userID := uuid.New()
	_, err := store.Carts.AddOrIncrement(ctx, userID, p1.ID, 2)
	require.NoError(t, err)
	_, err = store.Carts.AddOrIncrement(ctx, userID, p2.ID, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Orders.PlaceOrder(ctx, userID, func([]models.CartEntry) (*models.Order, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	entries, err := store.Carts.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var seen []models.CartEntry
	order, err := store.Orders.PlaceOrder(ctx, userID, func(entries []models.CartEntry) (*models.Order, error) {
		seen = entries
		o := &models.Order{UserID: userID, Status: models.OrderStatusPending}
		for i, e := range entries {
			o.Items = append(o.Items, models.OrderItem{Position: i, ProductID: e.ProductID, Quantity: e.Quantity})
		}
		return o, nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, p1.ID, seen[0].ProductID)
	require.NotNil(t, seen[0].Product)
	assert.Equal(t, 500.0, seen[0].Product.Price)
	assert.NotEqual(t, uuid.Nil, order.ID)

	entries, err = store.Carts.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.Products.Delete(ctx, p2.ID)
	require.NoError(t, err)

	orders, err := store.Orders.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)
	assert.NotNil(t, orders[0].Items[0].Product)
	assert.Nil(t, orders[0].Items[1].Product)
}

func TestWishlist_DuplicateAndIdempotentDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	userID := uuid.New()

	entry, err := store.Wishlists.Add(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", entry.Product.Name)

	_, err = store.Wishlists.Add(ctx, userID, p.ID)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	entries, err := store.Wishlists.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.NoError(t, store.Wishlists.Delete(ctx, userID, entry.ID))
	assert.NoError(t, store.Wishlists.Delete(ctx, userID, entry.ID))

	_, err = store.Wishlists.Add(ctx, userID, p.ID)
	assert.NoError(t, err)
}

func TestProducts_DeleteCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := seedProduct(t, store, "A", "Saree", 1000)
	userID := uuid.New()
	_, err := store.Carts.AddOrIncrement(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	_, err = store.Wishlists.Add(ctx, userID, p.ID)
	require.NoError(t, err)

	_, err = store.Products.Delete(ctx, p.ID)
	require.NoError(t, err)

	cart, err := store.Carts.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart)
	wishlist, err := store.Wishlists.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	_, err = store.Products.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUsersReviewsContacts(t *testing.T) {
	s := New()
	store := s.Repositories()
	ctx := context.Background()

	u, created, err := store.Users.FindOrCreateByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.DefaultUserName, u.Name)

	again, created, err := store.Users.FindOrCreateByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)

	require.NoError(t, store.Users.SetAdmin(ctx, u.ID, true))
	assert.ErrorIs(t, store.Users.SetAdmin(ctx, uuid.New(), true), repository.ErrNotFound)

	older := &models.Review{Name: "A", Text: "ok", Stars: 4}
	newer := &models.Review{Name: "B", Text: "great", Stars: 5}
	require.NoError(t, store.Reviews.Create(ctx, older))
	require.NoError(t, store.Reviews.Create(ctx, newer))
	reviews, err := store.Reviews.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, newer.ID, reviews[0].ID)
	assert.NoError(t, store.Reviews.Delete(ctx, older.ID))
	assert.ErrorIs(t, store.Reviews.Delete(ctx, older.ID), repository.ErrNotFound)

	require.NoError(t, store.Contacts.Create(ctx, &models.ContactMessage{Name: "A", Email: "a@example.com", Message: "hello"}))
	assert.Len(t, s.Contacts(), 1)
	assert.NoError(t, store.Ping(ctx))
}
