package core

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// storageService implements the StorageService interface on Cloud Storage.
type storageService struct {
	bucket     *gcs.BucketHandle
	bucketName string
	logger     *zap.Logger
}

// NewStorageService creates a new StorageService for the given bucket.
func NewStorageService(bucket *gcs.BucketHandle, bucketName string, logger *zap.Logger) StorageService {
	return &storageService{bucket: bucket, bucketName: bucketName, logger: logger}
}

// UploadProfileImage stores the image at profiles/{uid}.jpg, overwriting any
// previous upload, makes the object publicly readable, and returns its URL.
func (s *storageService) UploadProfileImage(ctx context.Context, uid string, content io.Reader, contentType string) (string, error) {
	if uid == "" {
		return "", fmt.Errorf("uid cannot be empty for profile image upload")
	}

	objectName := fmt.Sprintf("profiles/%s.jpg", uid)
	object := s.bucket.Object(objectName)

	writer := object.NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, content); err != nil {
		writer.Close() // Best effort; the upload already failed
		return "", fmt.Errorf("failed to write profile image for user '%s': %w", uid, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize profile image for user '%s': %w", uid, err)
	}

	if err := object.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to make profile image public for user '%s': %w", uid, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName)
	s.logger.Info("Profile image uploaded", zap.String("uid", uid), zap.String("url", url))
	return url, nil
}
