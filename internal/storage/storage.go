package storage

import (
	"context"
	"io"
)

// Backend stores attachment files by key. LocalStorage serves them from disk,
// Client from an S3 bucket.
type Backend interface {
	// Put writes body under key.
	Put(ctx context.Context, key string, body io.Reader, contentType string, sizeBytes int64) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a URL clients can fetch key from.
	URL(ctx context.Context, key string) (string, error)
}
