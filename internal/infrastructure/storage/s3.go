package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/fulfillment"
	"github.com/shopfront/backend/internal/infrastructure/config"
)

// Ensure S3AssetStorage implements AssetStorage
var _ fulfillment.AssetStorage = (*S3AssetStorage)(nil)

// S3AssetStorage serves assets from an S3-compatible bucket
// (AWS S3, MinIO, etc.)
type S3AssetStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3AssetStorage creates an S3 storage from configuration.
func NewS3AssetStorage(cfg *config.AssetsConfig, logger *zap.Logger) (*S3AssetStorage, error) {
	if cfg == nil {
		return nil, errors.New("assets configuration is required")
	}
	if cfg.S3Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	if cfg.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			endpoint := cfg.S3Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3AssetStorage{
		client: client,
		bucket: cfg.S3Bucket,
		logger: logger,
	}, nil
}

// Open fetches the object with the given key from the bucket.
func (s *S3AssetStorage) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("get object %s: %w", key, err)
	}

	var size int64
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}
