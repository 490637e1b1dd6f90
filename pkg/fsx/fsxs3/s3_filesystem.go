package fsxs3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chalkhire/chalkboard/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem backed by an S3 bucket
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates a filesystem rooted at bucket/prefix
func NewS3FileSystem(client *s3.Client, bucket, prefix string) fsx.FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (f *S3FileSystem) key(key string) string {
	if f.prefix == "" {
		return key
	}
	return f.prefix + "/" + key
}

// Upload stores content under key and returns the object URL
func (f *S3FileSystem) Upload(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	fullKey := f.key(key)

	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(fullKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", f.bucket, fullKey), nil
}

// Download retrieves the content stored under key
func (f *S3FileSystem) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	fullKey := f.key(key)

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", fullKey, err)
	}

	return out.Body, nil
}

// Delete removes the content stored under key
func (f *S3FileSystem) Delete(ctx context.Context, key string) error {
	fullKey := f.key(key)

	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", fullKey, err)
	}

	return nil
}
