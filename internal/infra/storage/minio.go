package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// MinioStore keeps uploads in a MinIO bucket instead of process memory.
type MinioStore struct {
	client     *minio.Client
	bucketName string
	region     string
}

func NewMinioStore(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: cli, bucketName: bucket, region: region}, nil
}

// Save uploads the buffered file under a unique key.
func (s *MinioStore) Save(ctx context.Context, filename, contentType string, data []byte) (*analysis.StoredFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("uploads/%s-%s", uuid.New().String(), filename)

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	// Public URL (if bucket is public); private buckets need presigned URLs.
	url := fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key)
	return &analysis.StoredFile{
		URL:         url,
		Filename:    filename,
		ContentType: contentType,
	}, nil
}

// Open reports false: MinIO objects are fetched through the bucket URL, not
// served by this process.
func (s *MinioStore) Open(string) ([]byte, string, bool) {
	return nil, "", false
}
