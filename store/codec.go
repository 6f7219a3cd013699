package store

import (
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// codecFor picks the compression codec from the file extension.
// Unrecognized extensions mean plain, uncompressed JSON.
func codecFor(name string) string {
	return path.Ext(name)
}

// decompressor wraps r with the decoder implied by ext. The returned
// closer must be called before the underlying reader is closed.
func decompressor(ext string, r io.Reader) (io.Reader, func() error, error) {
	switch ext {
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("store: zstd reader: %w", err)
		}
		return zr.IOReadCloser(), func() error { zr.Close(); return nil }, nil
	case ".lz4":
		return lz4.NewReader(r), func() error { return nil }, nil
	case ".gz":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("store: gzip reader: %w", err)
		}
		return gr, gr.Close, nil
	default:
		return r, func() error { return nil }, nil
	}
}

// compressor wraps w with the encoder implied by ext. The returned
// closer flushes the encoder and must be called before w is closed.
func compressor(ext string, w io.Writer) (io.Writer, func() error, error) {
	switch ext {
	case ".zst":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("store: zstd writer: %w", err)
		}
		return zw, zw.Close, nil
	case ".lz4":
		lw := lz4.NewWriter(w)
		return lw, lw.Close, nil
	case ".gz":
		gw := gzip.NewWriter(w)
		return gw, gw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}
