package object

import (
	"context"
	"io"
)

// Store saves and retrieves opaque objects by key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
