package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/cache"
	"github.com/princy-boutique/storefront/internal/config"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
	"github.com/princy-boutique/storefront/internal/repository/memory"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

var testUploadConfig = config.UploadConfig{
	MaxFiles:    5,
	MaxFileSize: 5 << 20,
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return memory.NewStore()
}

func newTestUploader(t *testing.T) (*ImageUploader, *LocalImageStore) {
	t.Helper()
	images, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewImageUploader(images, testUploadConfig), images
}

func newTestProductService(t *testing.T, store *repository.Store) *ProductService {
	t.Helper()
	uploader, _ := newTestUploader(t)
	return NewProductService(store.Products, cache.NewLoader(cache.NoopCache{}), uploader)
}

func seedProduct(t *testing.T, store *repository.Store, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Category: "Sarees",
		Fabric:   "Silk",
		Price:    price,
		Sizes:    pq.StringArray{"M"},
	}
	p.Normalize()
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}

func upload(name string, body []byte) ImageUpload {
	return ImageUpload{
		Filename: name,
		Size:     int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }
