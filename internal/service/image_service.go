package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Anoch123/exodus-instant-booking/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageService stores tour and hotel photos in the object store. Objects
// are keyed by agency so one tenant can never overwrite another's media.
type ImageService struct {
	client *minio.Client
	bucket string
	secure bool
}

func NewImageService(ctx context.Context, cfg config.StorageConfig) (*ImageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &ImageService{client: client, bucket: cfg.Bucket, secure: cfg.UseSSL}, nil
}

// Upload stores one image and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, agencyID uuid.UUID, folder, contentType string, size int64, r io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrUnsupportedImageType
	}

	objectName := path.Join(agencyID.String(), folder, uuid.New().String()+ext)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.publicURL(objectName), nil
}

// Delete removes an image by its URL. Unknown URLs are rejected rather
// than silently ignored so callers notice stale references.
func (s *ImageService) Delete(ctx context.Context, agencyID uuid.UUID, imageURL string) error {
	objectName, err := s.objectName(imageURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(objectName, agencyID.String()+"/") {
		return errors.New("image does not belong to this agency")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *ImageService) publicURL(objectName string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectName)
}

func (s *ImageService) objectName(imageURL string) (string, error) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("url %q is not in bucket %s", imageURL, s.bucket)
	}
	name := imageURL[idx+len(marker):]
	if name == "" {
		return "", fmt.Errorf("url %q has no object name", imageURL)
	}
	return name, nil
}
