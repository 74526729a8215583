package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage stores images in a MinIO bucket. Objects are keyed by
// <folder>/<uuid><ext> so everything belonging to one account or offer can
// be removed by prefix.
type Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	log.Info("S3 storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))
	return &Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores the image under the folder prefix and returns its retrieval
// URL. The object name is randomized; only the extension of the original
// file name survives.
func (s *Storage) Upload(ctx context.Context, folder, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("Uploaded object", zap.String("key", objectKey), zap.String("url", fileURL), zap.Int("size_bytes", len(data)))
	return fileURL, nil
}

// DeleteFolder removes every object under the folder prefix.
func (s *Storage) DeleteFolder(ctx context.Context, folder string) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    folder + "/",
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			s.logger.Error("Listing objects for deletion failed", zap.String("prefix", folder), zap.Error(object.Err))
			return fmt.Errorf("failed to list objects under %s: %w", folder, object.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Error("RemoveObject failed", zap.String("key", object.Key), zap.Error(err))
			return fmt.Errorf("failed to remove object %s: %w", object.Key, err)
		}
	}
	return nil
}
