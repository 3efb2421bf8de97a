// Package storage wraps an S3-compatible bucket (MinIO in development) for
// presigned uploads and downloads of post media.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned by New when no endpoint is configured.
var ErrDisabled = errors.New("storage: not configured")

// Service defines the interface for storage operations
type Service interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	// EnsureBucket creates the bucket if it doesn't exist
	EnsureBucket(ctx context.Context) error
	Health(ctx context.Context) error
}

type Config struct {
	Endpoint string
	// PublicEndpoint is the host clients reach; presigned URLs are signed for it.
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string
	UseSSL         bool
}

type service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// New builds an S3 client for cfg. It returns ErrDisabled when cfg.Endpoint
// is empty so callers can run without media support.
func New(ctx context.Context, cfg Config) (Service, error) {
	if cfg.Endpoint == "" {
		return nil, ErrDisabled
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage: S3_ACCESS_KEY and S3_SECRET_KEY are required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage: S3_BUCKET_NAME is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PublicEndpoint == "" {
		cfg.PublicEndpoint = cfg.Endpoint
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := newClient(awsCfg, endpointURL(cfg.Endpoint, cfg.UseSSL))
	public := client
	if cfg.PublicEndpoint != cfg.Endpoint {
		public = newClient(awsCfg, endpointURL(cfg.PublicEndpoint, cfg.UseSSL))
	}
	slog.Info("Storage configured", "endpoint", cfg.Endpoint, "public_endpoint", cfg.PublicEndpoint, "bucket", cfg.Bucket)

	return &service{
		client:    client,
		presigner: s3.NewPresignClient(public),
		bucket:    cfg.Bucket,
	}, nil
}

// newClient uses path-style addressing, which MinIO requires.
func newClient(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
}

func endpointURL(host string, useSSL bool) string {
	if useSSL {
		return "https://" + host
	}
	return "http://" + host
}

func (s *service) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	slog.Info("Created S3 bucket", "bucket", s.bucket)
	return nil
}

func (s *service) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if key == "" || contentType == "" {
		return "", errors.New("storage: key and content type are required")
	}
	if ttl <= 0 {
		return "", errors.New("storage: ttl must be positive")
	}

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign upload %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *service) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	if ttl <= 0 {
		return "", errors.New("storage: ttl must be positive")
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign download %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage: key is required")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *service) Health(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
