package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/models"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func testProduct() *models.Product {
	p := &models.Product{Name: "Silk Saree", Category: "Saree", Price: 4500, Sizes: pq.StringArray{"Free"}}
	p.ID = uuid.New()
	return p
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	p := testProduct()

	require.NoError(t, cache.Set(ctx, p))
	assert.True(t, mr.Exists(productKey(p.ID)))
	ttl := mr.TTL(productKey(p.ID))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+12*time.Second)

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Sizes, got.Sizes)

	require.NoError(t, cache.Delete(ctx, p.ID))
	_, err = cache.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	p := testProduct()

	require.NoError(t, cache.Set(ctx, p))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	id := uuid.New()
	require.NoError(t, mr.Set(productKey(id), "{not json"))

	_, err := cache.Get(context.Background(), id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestLoader_ReadsThroughAndCaches(t *testing.T) {
	cache, mr := setupTestRedis(t)
	loader := NewLoader(cache)
	ctx := context.Background()
	p := testProduct()

	var loads int32
	load := func(context.Context, uuid.UUID) (*models.Product, error) {
		atomic.AddInt32(&loads, 1)
		return p, nil
	}

	got, err := loader.Product(ctx, p.ID, load)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	raw, err := mr.Get(productKey(p.ID))
	require.NoError(t, err)
	var cached models.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, p.ID, cached.ID)

	_, err = loader.Product(ctx, p.ID, load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	loader.Invalidate(ctx, p.ID)
	_, err = loader.Product(ctx, p.ID, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestLoader_CollapsesConcurrentMisses(t *testing.T) {
	loader := NewLoader(NoopCache{})
	p := testProduct()

	release := make(chan struct{})
	var loads int32
	load := func(context.Context, uuid.UUID) (*models.Product, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return p, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			got, err := loader.Product(context.Background(), p.ID, load)
			assert.NoError(t, err)
			assert.Equal(t, p.ID, got.ID)
		}()
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestLoader_PropagatesLoadErrorsAndSurvivesCacheOutage(t *testing.T) {
	cache, mr := setupTestRedis(t)
	loader := NewLoader(cache)
	ctx := context.Background()
	id := uuid.New()

	notFound := errors.New("not found")
	_, err := loader.Product(ctx, id, func(context.Context, uuid.UUID) (*models.Product, error) {
		return nil, notFound
	})
	assert.ErrorIs(t, err, notFound)

	mr.Close()
	p := testProduct()
	got, err := loader.Product(ctx, p.ID, func(context.Context, uuid.UUID) (*models.Product, error) {
		return p, nil
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
