// Package minio uploads produced reports to S3-compatible object storage.
package minio

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// XLSXContentType is the media type of the uploaded spreadsheets
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Options configures the connection to the object store
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Store uploads files into a single bucket
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New connects to the object store and makes sure the bucket exists
func New(ctx context.Context, opts Options) (*Store, error) {
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
	}

	return &Store{client: cli, bucketName: opts.Bucket, region: opts.Region}, nil
}

// Upload stores localPath under key and returns the object URL
func (s *Store) Upload(ctx context.Context, localPath, key string) (string, error) {
	contentType := "application/octet-stream"
	if filepath.Ext(localPath) == ".xlsx" {
		contentType = XLSXContentType
	}

	_, err := s.client.FPutObject(ctx, s.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	// Public URL; private buckets need a presigned URL instead
	u := *s.client.EndpointURL()
	u.Path = path.Join("/", s.bucketName, key)
	return u.String(), nil
}
