// Package inmem provides a base in-memory implementation
// of the storage driver interface for demonstration and tests.
package inmem

import (
	"bytes"
	"context"
	"iter"
	"sort"
	"strings"
	"sync"

	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/kv"
)

// Driver is a thread-safe in-memory implementation of the storage
// driver interface. Unlike the remote drivers it is safe for
// concurrent use, so tests can exercise follow streams against
// concurrent writes.
type Driver struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ driver.Driver = (*Driver)(nil)

// New creates an empty in-memory driver.
func New() *Driver {
	return &Driver{
		data: make(map[string][]byte),
	}
}

// Get implements the driver interface for exact-key reads.
func (d *Driver) Get(_ context.Context, key []byte) (kv.KeyValue, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.data[string(key)]
	if !ok {
		return kv.KeyValue{}, false, nil
	}

	return kv.KeyValue{
		Key:   bytes.Clone(key),
		Value: bytes.Clone(value),
	}, true, nil
}

// Put implements the driver interface for writes.
func (d *Driver) Put(_ context.Context, key []byte, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.data[string(key)] = bytes.Clone(value)

	return nil
}

// Delete implements the driver interface for deletes.
func (d *Driver) Delete(_ context.Context, key []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.data, string(key))

	return nil
}

// Scan implements the driver interface for prefix enumeration.
// The matching pairs are snapshotted under the read lock and yielded in
// key order for deterministic tests.
func (d *Driver) Scan(_ context.Context, prefix []byte) iter.Seq2[kv.KeyValue, error] {
	snapshot := d.snapshotPrefix(string(prefix))

	return func(yield func(kv.KeyValue, error) bool) {
		for _, pair := range snapshot {
			if !yield(pair, nil) {
				return
			}
		}
	}
}

func (d *Driver) snapshotPrefix(prefix string) []kv.KeyValue {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var pairs []kv.KeyValue

	for key, value := range d.data {
		if strings.HasPrefix(key, prefix) {
			pairs = append(pairs, kv.KeyValue{
				Key:   []byte(key),
				Value: bytes.Clone(value),
			})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].Key, pairs[j].Key) < 0
	})

	return pairs
}
