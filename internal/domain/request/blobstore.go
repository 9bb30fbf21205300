package request

import (
	"context"
	"io"
)

// BlobStore holds attachment content outside the database. Keys are opaque;
// the Attachment row is the only place a key is recorded.
type BlobStore interface {
	// Put streams r into the store under key, enforcing maxBytes, and
	// returns the byte count and hex SHA-256 checksum of what was written.
	Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error)

	// Get opens the blob for reading. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	Delete(ctx context.Context, key string) error
}
