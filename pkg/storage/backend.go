package storage

import "errors"

// ErrBucketNotFound is returned when an operation targets a bucket that was
// never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store for run metadata. All operations work
// with raw []byte; callers choose their own serialization. Implementations
// must be safe for concurrent use.
type Backend interface {
	// CreateBucket creates a bucket, idempotently.
	CreateBucket(name []byte) error
	// Put stores a key-value pair in an existing bucket.
	Put(bucket, key, value []byte) error
	// Get retrieves a value, returning nil (no error) when the key is absent.
	Get(bucket, key []byte) ([]byte, error)
	// ForEach visits every key-value pair in a bucket in key order.
	ForEach(bucket []byte, fn func(k, v []byte) error) error
	Close() error
}
