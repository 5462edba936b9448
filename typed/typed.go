// Package typed provides a storage facade for concrete value types.
// It serves use cases that want a fixed, compiler-checked field set
// instead of the generic record mapping the root package stores.
package typed

import (
	"context"
	"fmt"
	"iter"

	aiautilities "github.com/surgelove/aia-utilities"
	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/marshaller"
)

// NamedValue represents a decoded value together with the key it was
// stored under.
type NamedValue[T any] struct {
	Key   string
	Value T
}

// Store provides write/read operations for a single value type T.
type Store[T any] struct {
	drv   driver.Driver
	codec marshaller.TypedMarshaller[T]
}

// New creates a typed store over the specified driver and codec.
func New[T any](drv driver.Driver, codec marshaller.TypedMarshaller[T]) *Store[T] {
	return &Store[T]{
		drv:   drv,
		codec: codec,
	}
}

// NewJSON creates a typed store that serializes T as JSON.
func NewJSON[T any](drv driver.Driver) *Store[T] {
	return New[T](drv, marshaller.NewTyped[T](marshaller.NewJSONMarshaller()))
}

// Write serializes value and persists it under key, overwriting any
// prior value at that exact key.
func (s *Store[T]) Write(ctx context.Context, key string, value T) error {
	if key == "" {
		return aiautilities.NewInvalidArgumentError("key", "must not be empty")
	}

	raw, err := s.codec.Marshal(value)
	if err != nil {
		return aiautilities.NewSerializationError(err)
	}

	if err := s.drv.Put(ctx, []byte(key), raw); err != nil {
		return fmt.Errorf("write '%s': %w", key, err)
	}

	return nil
}

// ReadOne returns the value previously written under key.
func (s *Store[T]) ReadOne(ctx context.Context, key string) (T, error) {
	var zero T

	if key == "" {
		return zero, aiautilities.NewInvalidArgumentError("key", "must not be empty")
	}

	pair, found, err := s.drv.Get(ctx, []byte(key))
	if err != nil {
		return zero, fmt.Errorf("read '%s': %w", key, err)
	}

	if !found {
		return zero, aiautilities.NewNotFoundError(key)
	}

	value, err := s.codec.Unmarshal(pair.Value)
	if err != nil {
		return zero, aiautilities.NewSerializationError(err)
	}

	return value, nil
}

// ReadAllByPrefix lazily enumerates all values whose keys begin with
// prefix, in store-defined order. Entries that no longer decode as T
// surface as SerializationError elements rather than being skipped,
// since a typed space is expected to be homogeneous.
func (s *Store[T]) ReadAllByPrefix(ctx context.Context, prefix string) iter.Seq2[NamedValue[T], error] {
	return func(yield func(NamedValue[T], error) bool) {
		var zero NamedValue[T]

		if prefix == "" {
			yield(zero, aiautilities.NewInvalidArgumentError("prefix", "must not be empty"))
			return
		}

		for pair, err := range s.drv.Scan(ctx, []byte(prefix)) {
			if err != nil {
				yield(zero, err)
				return
			}

			value, err := s.codec.Unmarshal(pair.Value)
			if err != nil {
				if !yield(zero, aiautilities.NewSerializationError(err)) {
					return
				}

				continue
			}

			named := NamedValue[T]{
				Key:   string(pair.Key),
				Value: value,
			}

			if !yield(named, nil) {
				return
			}
		}
	}
}

// Delete removes the value under key. Deleting an absent key is not an
// error.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return aiautilities.NewInvalidArgumentError("key", "must not be empty")
	}

	if err := s.drv.Delete(ctx, []byte(key)); err != nil {
		return fmt.Errorf("delete '%s': %w", key, err)
	}

	return nil
}
