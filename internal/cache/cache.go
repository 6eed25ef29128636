// Package cache holds the product read-through cache. Redis is optional;
// without it NoopCache keeps every read on the store.
package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, uuid.UUID) (*models.Product, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, *models.Product) error             { return nil }
func (NoopCache) Delete(context.Context, uuid.UUID) error                { return nil }
