package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds configuration for S3-compatible blob storage
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the AWS endpoint for S3-compatible providers
	// (MinIO, Wasabi). Leave empty for AWS S3.
	Endpoint string
	// PresignTTL bounds how long resolved download links stay valid
	PresignTTL time.Duration
}

// S3Storage stores uploaded candidate documents as opaque blobs and hands
// back the object key as the file reference.
type S3Storage struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucket     string
	presignTTL time.Duration
}

// NewS3Storage creates the storage client. Supports AWS S3 and any
// S3-compatible endpoint.
func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	return &S3Storage{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		presignTTL: ttl,
	}, nil
}

// Store uploads the blob under a random key and returns the key as fileRef
func (s *S3Storage) Store(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("documents/%s%s", uuid.NewString(), filepath.Ext(name))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to store object: %w", err)
	}

	return key, nil
}

// Resolve returns a time-limited download URL for a stored fileRef
func (s *S3Storage) Resolve(ctx context.Context, fileRef string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileRef),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("storage: failed to presign object: %w", err)
	}

	return req.URL, nil
}
