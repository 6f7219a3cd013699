// Package s3 implements blobstore.BlobStore on Amazon S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/driftgo/blobstore"
)

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every key (e.g. "embeddings/").
	Prefix string
	// Client overrides the client built from the default AWS config.
	Client *s3.Client
}

// Store reads blobs from an S3 bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3 blob store for the given bucket, loading the
// default AWS configuration unless a client is supplied.
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	client := opts.Client
	if client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3: load aws config: %w", err)
		}
		client = s3.NewFromConfig(cfg)
	}

	return &Store{client: client, bucket: bucket, prefix: opts.Prefix}, nil
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithClient supplies a preconfigured S3 client.
func WithClient(client *s3.Client) func(*Options) {
	return func(o *Options) {
		o.Client = client
	}
}

// Open streams an object. A missing key satisfies
// errors.Is(err, blobstore.ErrNotFound).
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("s3: %s: %w", key, blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("s3: get %s: %w", key, err)
	}
	return out.Body, nil
}
