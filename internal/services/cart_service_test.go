package services

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/models"
)

func TestCartService_AddMergesQuantities(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, store, "Banarasi", 500)

	_, err := svc.AddOrMerge(ctx, user, p.ID, 2)
	require.NoError(t, err)
	entry, err := svc.AddOrMerge(ctx, user, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)

	view, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 2500.0, view.Subtotal)
}

func TestCartService_ConcurrentAddsMergeIntoOneEntry(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, store, "Chanderi", 700)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddOrMerge(ctx, user, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 50, view.Items[0].Quantity)
}

func TestCartService_AddValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	p := seedProduct(t, store, "Kota", 900)

	_, err := svc.AddOrMerge(ctx, uuid.New(), p.ID, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.AddOrMerge(ctx, uuid.New(), uuid.New(), 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Product not found", apperr.PublicMessage(err))
}

func TestCartService_QuantityCap(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, store, "Paithani", 4000)

	_, err := svc.AddOrMerge(ctx, user, p.ID, math.MaxInt)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	entry, err := svc.AddOrMerge(ctx, user, p.ID, models.MaxCartQuantity)
	require.NoError(t, err)

	_, err = svc.AddOrMerge(ctx, user, p.ID, 1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Quantity cannot exceed 1000", apperr.PublicMessage(err))

	_, err = svc.SetQuantity(ctx, user, entry.ID, models.MaxCartQuantity+1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	view, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, models.MaxCartQuantity, view.Items[0].Quantity)
}

func TestCartService_SetQuantityFloor(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, store, "Tussar", 1200)

	entry, err := svc.AddOrMerge(ctx, user, p.ID, 1)
	require.NoError(t, err)

	updated, err := svc.SetQuantity(ctx, user, entry.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.SetQuantity(ctx, user, entry.ID, -1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	removed, err := svc.SetQuantity(ctx, user, entry.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, removed)

	view, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)
}

func TestCartService_OwnershipIsEnforced(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()
	p := seedProduct(t, store, "Organza", 1500)

	entry, err := svc.AddOrMerge(ctx, owner, p.ID, 1)
	require.NoError(t, err)

	_, err = svc.SetQuantity(ctx, other, entry.ID, 3)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	err = svc.Remove(ctx, other, entry.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Item not found", apperr.PublicMessage(err))

	require.NoError(t, svc.Remove(ctx, owner, entry.ID))
	err = svc.Remove(ctx, owner, entry.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCartService_Clear(t *testing.T) {
	store := newTestStore(t)
	svc := NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	user := uuid.New()

	require.NoError(t, svc.Clear(ctx, user))

	_, err := svc.AddOrMerge(ctx, user, seedProduct(t, store, "A", 100).ID, 1)
	require.NoError(t, err)
	_, err = svc.AddOrMerge(ctx, user, seedProduct(t, store, "B", 200).ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, user))

	view, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Subtotal)
}
