package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/config"
)

const imageFolder = "products"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageUpload is one file of a multipart request.
type ImageUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type preparedImage struct {
	key         string
	contentType string
	body        []byte
}

// ImageUploader validates a request's images and stores them as a group:
// either every image gets a URL or none stays stored.
type ImageUploader struct {
	store    ImageStore
	maxFiles int
	maxSize  int64
	now      func() time.Time
}

func NewImageUploader(store ImageStore, cfg config.UploadConfig) *ImageUploader {
	return &ImageUploader{
		store:    store,
		maxFiles: cfg.MaxFiles,
		maxSize:  cfg.MaxFileSize,
		now:      time.Now,
	}
}

// Upload returns the URLs in request order.
func (u *ImageUploader) Upload(ctx context.Context, files []ImageUpload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > u.maxFiles {
		return nil, apperr.Validation(fmt.Sprintf("At most %d images are allowed", u.maxFiles))
	}

	prepared := make([]preparedImage, len(files))
	for i, f := range files {
		img, err := u.prepare(f)
		if err != nil {
			return nil, err
		}
		prepared[i] = img
	}

	urls := make([]string, len(prepared))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range prepared {
		i, img := i, img
		g.Go(func() error {
			url, err := u.store.Put(gctx, img.key, img.contentType, img.body)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stored := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				stored = append(stored, url)
			}
		}
		u.Release(context.WithoutCancel(ctx), stored)
		return nil, apperr.Upstream("Image upload failed", err)
	}

	return urls, nil
}

// Release deletes stored images, logging failures.
func (u *ImageUploader) Release(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := u.store.Delete(ctx, url); err != nil {
			logrus.WithError(err).WithField("url", url).Warn("Failed to release image")
		}
	}
}

func (u *ImageUploader) prepare(f ImageUpload) (preparedImage, error) {
	if f.Size > u.maxSize {
		return preparedImage{}, apperr.Validation(fmt.Sprintf("%s exceeds the %d MB limit", f.Filename, u.maxSize>>20))
	}

	rc, err := f.Open()
	if err != nil {
		return preparedImage{}, apperr.Validation("Unable to read " + f.Filename)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, u.maxSize+1))
	if err != nil {
		return preparedImage{}, apperr.Validation("Unable to read " + f.Filename)
	}
	if int64(len(body)) > u.maxSize {
		return preparedImage{}, apperr.Validation(fmt.Sprintf("%s exceeds the %d MB limit", f.Filename, u.maxSize>>20))
	}

	mtype := mimetype.Detect(body)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return preparedImage{}, apperr.Validation("Only jpg, png, webp and gif images are allowed")
	}

	key := fmt.Sprintf("%s/%s_%s%s", imageFolder, u.now().UTC().Format("20060102"), uuid.NewString(), mtype.Extension())
	return preparedImage{key: key, contentType: mtype.String(), body: body}, nil
}
