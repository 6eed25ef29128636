package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/apperr"
)

type fakeS3 struct {
	s3iface.S3API

	mu      sync.Mutex
	objects map[string]string
	failOn  string
	deleted []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]string)}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.failOn != "" && aws.StringValue(in.ContentType) == f.failOn {
		return nil, errors.New("connection reset")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.StringValue(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.StringValue(in.Key))
	f.deleted = append(f.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestImageUploader_S3UploadKeepsOrder(t *testing.T) {
	client := newFakeS3()
	store := NewS3ImageStore(client, "boutique", "https://cdn.example.com/")
	uploader := NewImageUploader(store, testUploadConfig)

	urls, err := uploader.Upload(context.Background(), []ImageUpload{
		upload("a.png", pngHeader),
		upload("b.gif", gifHeader),
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.True(t, strings.HasPrefix(urls[0], "https://cdn.example.com/products/"))
	assert.True(t, strings.HasSuffix(urls[0], ".png"))
	assert.True(t, strings.HasSuffix(urls[1], ".gif"))
	assert.Len(t, client.objects, 2)

	uploader.Release(context.Background(), urls)
	assert.Empty(t, client.objects)
}

func TestImageUploader_FailureReleasesStoredImages(t *testing.T) {
	client := newFakeS3()
	client.failOn = "image/gif"
	uploader := NewImageUploader(NewS3ImageStore(client, "boutique", "https://cdn.example.com"), testUploadConfig)

	urls, err := uploader.Upload(context.Background(), []ImageUpload{
		upload("a.png", pngHeader),
		upload("b.gif", gifHeader),
	})
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Empty(t, client.objects)
}

func TestImageUploader_Limits(t *testing.T) {
	uploader := NewImageUploader(NewS3ImageStore(newFakeS3(), "boutique", "https://cdn.example.com"), testUploadConfig)
	ctx := context.Background()

	tooMany := make([]ImageUpload, 6)
	for i := range tooMany {
		tooMany[i] = upload("a.png", pngHeader)
	}
	_, err := uploader.Upload(ctx, tooMany)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	big := upload("big.png", pngHeader)
	big.Size = testUploadConfig.MaxFileSize + 1
	_, err = uploader.Upload(ctx, []ImageUpload{big})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = uploader.Upload(ctx, []ImageUpload{upload("fake.png", []byte("%PDF-1.4 not an image"))})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	urls, err := uploader.Upload(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestKeyFromURL(t *testing.T) {
	key, ok := keyFromURL("https://cdn.example.com", "https://cdn.example.com/products/a.png")
	assert.True(t, ok)
	assert.Equal(t, "products/a.png", key)

	_, ok = keyFromURL("https://cdn.example.com", "https://elsewhere.example.com/a.png")
	assert.False(t, ok)
}
