package storage

import (
	"context"
	"io"
)

// BlobStore holds submission files and publication images. Keys are opaque
// to callers; PresignGet turns a key into a short-lived download link so
// stored files are never served through the API process.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}
