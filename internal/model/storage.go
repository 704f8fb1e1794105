package model

import (
	"context"
	"io"
)

// ObjectStore keeps uploaded blobs and derives their public addresses.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	MakePublic(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(rawURL string) (string, error)
}
