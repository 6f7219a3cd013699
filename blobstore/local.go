package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local implements BlobStore on the local file system.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at the given directory.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Open opens a file for reading. A missing file satisfies
// errors.Is(err, ErrNotFound).
func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, name))
}
