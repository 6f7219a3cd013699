package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore provides read-only access to named blobs.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	// The caller owns the returned reader and must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
