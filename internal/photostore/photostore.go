package photostore

import (
	"context"
	"io"
	"time"
)

// BlobStore is the object-storage boundary for campsite photos. Keys are
// opaque paths namespaced by owner and campsite; implementations must never
// derive a key from a client-supplied filename.
type BlobStore interface {
	// Bucket names the logical bucket blobs are written to, recorded on each
	// photo row.
	Bucket() string
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Remove(ctx context.Context, key string) error
	// SignedURL returns a time-limited capability URL granting read access to
	// a single blob.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
