package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/princy-boutique/storefront/internal/models"
)

type LoadFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)

// Loader reads products through the cache. Concurrent misses for one id
// share a single store load. Cache failures are logged and never fail
// the read.
type Loader struct {
	cache ProductCache
	group singleflight.Group
}

func NewLoader(cache ProductCache) *Loader {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Loader{cache: cache}
}

func (l *Loader) Product(ctx context.Context, id uuid.UUID, load LoadFunc) (*models.Product, error) {
	product, err := l.cache.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache read failed")
	}

	v, err, _ := l.group.Do(id.String(), func() (interface{}, error) {
		loaded, err := load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(ctx, loaded); err != nil {
			logrus.WithError(err).WithField("product_id", id).Warn("Product cache write failed")
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers get their own copy of the shared result.
	shared := *v.(*models.Product)
	return &shared, nil
}

func (l *Loader) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := l.cache.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache invalidation failed")
	}
}
