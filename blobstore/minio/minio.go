// Package minio implements blobstore.BlobStore on MinIO and other
// S3-compatible object stores.
package minio

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/driftgo/blobstore"
)

// Store reads blobs from a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a MinIO blob store.
// rootPrefix is prepended to all keys (e.g. "embeddings/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

// Open streams an object. A missing key satisfies
// errors.Is(err, blobstore.ErrNotFound).
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: get %s: %w", key, err)
	}

	// GetObject is lazy; Stat surfaces a missing key before decoding starts.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
			return nil, fmt.Errorf("minio: %s: %w", key, blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("minio: stat %s: %w", key, err)
	}
	return obj, nil
}
