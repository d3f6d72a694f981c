package repositories

import "context"

// LocalStore is best-effort key/value storage local to one process.
// Values are opaque string-encoded blobs.
type LocalStore interface {
	// Get returns apperrors.ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
