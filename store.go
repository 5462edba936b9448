package aiautilities

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/tarantool/go-option"

	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/internal/options"
	"github.com/surgelove/aia-utilities/marshaller"
	"github.com/surgelove/aia-utilities/record"
	"github.com/surgelove/aia-utilities/watch"
)

// rangeOptions contains configuration options for prefix read operations.
type rangeOptions struct {
	Limit            int  // Maximum number of records to yield.
	OrderByTimestamp bool // Yield records sorted by their timestamp field.
}

func newRangeOptions() rangeOptions {
	return rangeOptions{}
}

// RangeOption is a function that configures prefix read options.
type RangeOption func(*rangeOptions)

// WithLimit configures a prefix read to yield at most limit records.
func WithLimit(limit int) RangeOption {
	return func(opts *rangeOptions) {
		opts.Limit = limit
	}
}

// WithOrderByTimestamp configures a prefix read to yield records in
// ascending order of their timestamp field. Records without a numeric
// timestamp sort after all timestamped ones, keeping their relative
// order. Ordering requires reading the whole prefix before the first
// record is yielded.
func WithOrderByTimestamp() RangeOption {
	return func(opts *rangeOptions) {
		opts.OrderByTimestamp = true
	}
}

// Store is the main interface for record storage operations.
// It hides serialization and backend wire details behind write/read
// operations on string keys.
//
// A Store performs one backend round trip per call and never retries;
// failures propagate synchronously to the caller.
type Store interface {
	// Write serializes rec field-by-field and persists it under key,
	// overwriting any prior record at that exact key.
	// key must be non-empty; rec must be a non-empty mapping of field
	// names to scalar values.
	Write(ctx context.Context, key string, rec record.Record) error

	// ReadOne returns the record previously written under key.
	// A miss is reported as a NotFoundError, matchable with ErrNotFound.
	ReadOne(ctx context.Context, key string) (record.Record, error)

	// ReadAllByPrefix lazily enumerates all records whose keys begin
	// with prefix, in store-defined order unless WithOrderByTimestamp
	// is given. The sequence is finite and single-use; it is empty, not
	// an error, when no keys match. Entries whose stored bytes no
	// longer decode are skipped.
	// Options:
	//   - WithLimit: yield at most this many records
	//   - WithOrderByTimestamp: sort by the timestamp field
	ReadAllByPrefix(ctx context.Context, prefix string, opts ...RangeOption) iter.Seq2[record.Record, error]

	// Delete removes the record under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Follow streams records appearing under prefix. It rescans the
	// prefix at the configured poll interval and emits each key's
	// record exactly once, including keys written after the follow
	// started. The stream stops and the channel closes when ctx is
	// cancelled or the returned stop function is called.
	// Options:
	//   - watch.WithPollInterval: pause between rescans
	Follow(ctx context.Context, prefix string, opts ...watch.Option) (<-chan watch.Event, func(), error)
}

// storeOptions contains configuration options for store instances.
type storeOptions struct {
	marshaller option.Generic[marshaller.Marshaller]
}

func newStoreOptions() storeOptions {
	return storeOptions{
		marshaller: option.None[marshaller.Marshaller](),
	}
}

// Option is a function that configures store options.
type Option func(*storeOptions)

// WithMarshaller configures the codec used for stored records.
// JSON is the default.
func WithMarshaller(m marshaller.Marshaller) Option {
	return func(opts *storeOptions) {
		opts.marshaller = option.Some(m)
	}
}

// store is the concrete implementation of the Store interface.
type store struct {
	driver driver.Driver         // Underlying storage driver.
	codec  marshaller.Marshaller // Record wire codec.
}

// NewStore creates a new Store instance over the specified driver.
// The driver owns the backend connection handle; closing it is the
// caller's responsibility once the store is no longer used.
func NewStore(driver driver.Driver, opts ...Option) Store {
	resolved := options.ApplyOptions(newStoreOptions, opts)

	return &store{
		driver: driver,
		codec:  resolved.marshaller.UnwrapOr(marshaller.NewJSONMarshaller()),
	}
}

// Write implements the Store interface for single-record writes.
func (s *store) Write(ctx context.Context, key string, rec record.Record) error {
	if key == "" {
		return NewInvalidArgumentError("key", "must not be empty")
	}

	if err := rec.Validate(); err != nil {
		var unsupported record.UnsupportedValueError
		if errors.As(err, &unsupported) {
			return NewSerializationError(err)
		}

		return NewInvalidArgumentError("record", err.Error())
	}

	raw, err := s.codec.Marshal(rec)
	if err != nil {
		return NewSerializationError(err)
	}

	if err := s.driver.Put(ctx, []byte(key), raw); err != nil {
		return fmt.Errorf("write '%s': %w", key, err)
	}

	return nil
}

// ReadOne implements the Store interface for exact-key reads.
func (s *store) ReadOne(ctx context.Context, key string) (record.Record, error) {
	if key == "" {
		return nil, NewInvalidArgumentError("key", "must not be empty")
	}

	pair, found, err := s.driver.Get(ctx, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("read '%s': %w", key, err)
	}

	if !found {
		return nil, NewNotFoundError(key)
	}

	var rec record.Record
	if err := s.codec.Unmarshal(pair.Value, &rec); err != nil {
		return nil, NewSerializationError(err)
	}

	return rec, nil
}

// ReadAllByPrefix implements the Store interface for prefix reads.
func (s *store) ReadAllByPrefix(
	ctx context.Context,
	prefix string,
	opts ...RangeOption,
) iter.Seq2[record.Record, error] {
	resolved := options.ApplyOptions(newRangeOptions, opts)

	if prefix == "" {
		return errSeq(NewInvalidArgumentError("prefix", "must not be empty"))
	}

	if resolved.OrderByTimestamp {
		return s.readOrdered(ctx, prefix, resolved.Limit)
	}

	return func(yield func(record.Record, error) bool) {
		yielded := 0

		for pair, err := range s.driver.Scan(ctx, []byte(prefix)) {
			if err != nil {
				yield(nil, err)
				return
			}

			rec, ok := s.decode(pair.Value)
			if !ok {
				continue
			}

			if !yield(rec, nil) {
				return
			}

			yielded++
			if resolved.Limit > 0 && yielded == resolved.Limit {
				return
			}
		}
	}
}

// readOrdered materializes the prefix, sorts by the timestamp field and
// yields the result.
func (s *store) readOrdered(ctx context.Context, prefix string, limit int) iter.Seq2[record.Record, error] {
	var (
		records []record.Record
		scanErr error
	)

	for pair, err := range s.driver.Scan(ctx, []byte(prefix)) {
		if err != nil {
			scanErr = err
			break
		}

		if rec, ok := s.decode(pair.Value); ok {
			records = append(records, rec)
		}
	}

	if scanErr != nil {
		return errSeq(scanErr)
	}

	sort.SliceStable(records, func(i, j int) bool {
		left, leftOK := records[i].Timestamp()
		right, rightOK := records[j].Timestamp()

		switch {
		case leftOK && rightOK:
			return left < right
		case leftOK:
			return true
		default:
			return false
		}
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return func(yield func(record.Record, error) bool) {
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Delete implements the Store interface for single-key deletes.
func (s *store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return NewInvalidArgumentError("key", "must not be empty")
	}

	if err := s.driver.Delete(ctx, []byte(key)); err != nil {
		return fmt.Errorf("delete '%s': %w", key, err)
	}

	return nil
}

// decode deserializes stored bytes, reporting undecodable entries so
// prefix reads can skip them the way exact reads cannot.
func (s *store) decode(raw []byte) (record.Record, bool) {
	var rec record.Record
	if err := s.codec.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}

	return rec, true
}

// errSeq returns a sequence that reports err as its only element.
func errSeq(err error) iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		yield(nil, err)
	}
}
