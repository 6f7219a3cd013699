// Package blobstore abstracts read-only access to serialized embedding
// stores. The pipeline performs one bulk sequential read per corpus,
// so blobs are plain streams rather than random-access handles.
//
// Backends: local filesystem (this package), Amazon S3 (subpackage s3)
// and MinIO / S3-compatible storage (subpackage minio).
package blobstore
