// Package driver defines the interface for storage driver implementations.
// It provides a common interface for different storage backends like
// Redis, etcd and Tarantool.
package driver

import (
	"context"
	"iter"

	"github.com/surgelove/aia-utilities/kv"
)

// Driver is the interface that storage drivers must implement.
// Every method performs a single round trip to the backend; drivers add
// no retries, caching or backpressure of their own.
type Driver interface {
	// Get fetches the pair stored under key.
	// found is false when the key does not exist; that is not an error.
	Get(ctx context.Context, key []byte) (pair kv.KeyValue, found bool, err error)

	// Put stores value under key, overwriting any prior value.
	Put(ctx context.Context, key []byte, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key []byte) error

	// Scan lazily enumerates all pairs whose key starts with prefix, in
	// backend-defined order. The sequence is finite and single-use.
	// A transport failure surfaces as the error element of the sequence.
	Scan(ctx context.Context, prefix []byte) iter.Seq2[kv.KeyValue, error]
}
