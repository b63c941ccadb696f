package storage

import (
	"context"
	"io"
)

// Storage holds résumé attachments. Objects are exclusively owned by
// the candidate record referencing them.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
