package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hupe1980/driftgo/blobstore"
)

// Load reads a representation file from the blob store and validates
// it. The decompression codec follows the file extension.
func Load(ctx context.Context, bs blobstore.BlobStore, name string) (Reps, error) {
	rc, err := bs.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", name, err)
	}
	defer rc.Close()

	r, closeFn, err := decompressor(codecFor(name), rc)
	if err != nil {
		return nil, err
	}

	var reps Reps
	if err := json.NewDecoder(r).Decode(&reps); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("store: decode %s: %w", name, err)
	}
	if err := closeFn(); err != nil {
		return nil, fmt.Errorf("store: close codec %s: %w", name, err)
	}

	if err := reps.validate(); err != nil {
		return nil, fmt.Errorf("store: %s: %w", name, err)
	}

	return reps, nil
}

// WriteTo encodes reps as JSON onto w, compressing per the extension
// of name.
func (r Reps) WriteTo(w io.Writer, name string) error {
	cw, closeFn, err := compressor(codecFor(name), w)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(cw).Encode(r); err != nil {
		_ = closeFn()
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("store: close codec %s: %w", name, err)
	}

	return nil
}

// validate rejects ragged usage matrices and zero-dimension rows.
// An empty matrix for a word is allowed; callers treat it as absent.
func (r Reps) validate() error {
	for word, usages := range r {
		if len(usages) == 0 {
			continue
		}

		dim := len(usages[0])
		if dim == 0 {
			return fmt.Errorf("word %q: zero-dimension vector", word)
		}

		for i, row := range usages {
			if len(row) != dim {
				return fmt.Errorf("word %q: row %d has %d dims, want %d", word, i, len(row), dim)
			}
		}
	}

	return nil
}
