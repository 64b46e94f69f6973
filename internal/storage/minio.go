package storage

import (
	"bytes"
	"context"
	"log"
	"net/url"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/config"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the slice of object storage the portal needs: generated
// offer letters go in, short-lived download links come out.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type MinioStore struct {
	client *minioSDK.Client
	bucket string
}

func NewMinioStore() (*MinioStore, error) {
	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("Bucket created: %s", config.MinioBucket)
	}

	return &MinioStore{client: client, bucket: config.MinioBucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minioSDK.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinioStore) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
