// Package store loads and persists token representation sets.
//
// A representation file maps each target word to the matrix of
// contextual embeddings observed for it in one corpus. Files are
// JSON, optionally compressed; the compression codec is chosen by
// file extension (.zst, .lz4, .gz).
package store
