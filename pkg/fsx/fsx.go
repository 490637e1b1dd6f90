package fsx

import (
	"context"
	"io"
)

// FileSystem abstracts blob storage for uploaded assets
type FileSystem interface {
	// Upload stores content under key and returns a public URL
	Upload(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Download retrieves the content stored under key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content stored under key
	Delete(ctx context.Context, key string) error
}
