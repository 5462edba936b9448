// Package tntkv provides a Tarantool implementation of the storage
// driver interface over a plain key-value space.
//
// The space is expected to hold {key string, value string} tuples with
// a unique tree index on the key, e.g.:
//
//	box.schema.space.create('kv'):format({
//	    {name = 'key', type = 'string'},
//	    {name = 'value', type = 'string'},
//	})
//	box.space.kv:create_index('primary', {parts = {'key'}})
package tntkv

import (
	"context"
	"iter"
	"strings"

	"github.com/tarantool/go-tarantool/v2"

	aiautilities "github.com/surgelove/aia-utilities"
	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/kv"
)

const (
	// DefaultSpace is the space used when none is configured.
	DefaultSpace = "kv"

	// scanBatchSize is how many tuples one scan round trip pulls.
	scanBatchSize = 1000
)

// Driver is a Tarantool implementation of the storage driver interface.
// tarantool.Connection and pool connection adapters implement the Doer
// it consumes.
type Driver struct {
	conn  tarantool.Doer // Tarantool connection.
	space string         // Key-value space name.
}

var _ driver.Driver = (*Driver)(nil)

// New creates a new Tarantool driver instance over an established
// connection. An empty space selects DefaultSpace.
func New(conn tarantool.Doer, space string) *Driver {
	if space == "" {
		space = DefaultSpace
	}

	return &Driver{
		conn:  conn,
		space: space,
	}
}

// Get implements the driver interface for exact-key reads.
func (d *Driver) Get(ctx context.Context, key []byte) (kv.KeyValue, bool, error) {
	req := tarantool.NewSelectRequest(d.space).
		Context(ctx).
		Iterator(tarantool.IterEq).
		Key([]interface{}{string(key)}).
		Limit(1)

	var tuples []kvTuple
	if err := d.conn.Do(req).GetTyped(&tuples); err != nil {
		return kv.KeyValue{}, false, aiautilities.NewUnavailableError("select", err)
	}

	if len(tuples) == 0 {
		return kv.KeyValue{}, false, nil
	}

	return kv.KeyValue{
		Key:   []byte(tuples[0].key),
		Value: []byte(tuples[0].value),
	}, true, nil
}

// Put implements the driver interface for writes using a replace, which
// overwrites any existing tuple with the same key.
func (d *Driver) Put(ctx context.Context, key []byte, value []byte) error {
	req := tarantool.NewReplaceRequest(d.space).
		Context(ctx).
		Tuple(kvTuple{key: string(key), value: string(value)})

	if _, err := d.conn.Do(req).Get(); err != nil {
		return aiautilities.NewUnavailableError("replace", err)
	}

	return nil
}

// Delete implements the driver interface for deletes.
func (d *Driver) Delete(ctx context.Context, key []byte) error {
	req := tarantool.NewDeleteRequest(d.space).
		Context(ctx).
		Key([]interface{}{string(key)})

	if _, err := d.conn.Do(req).Get(); err != nil {
		return aiautilities.NewUnavailableError("delete", err)
	}

	return nil
}

// Scan implements the driver interface for prefix enumeration. Keys are
// walked in index order starting at the prefix, one batch per round
// trip, until a key falls outside the prefix.
func (d *Driver) Scan(ctx context.Context, prefix []byte) iter.Seq2[kv.KeyValue, error] {
	return func(yield func(kv.KeyValue, error) bool) {
		var (
			after    = string(prefix)
			iterator = tarantool.IterGe
		)

		for {
			req := tarantool.NewSelectRequest(d.space).
				Context(ctx).
				Iterator(iterator).
				Key([]interface{}{after}).
				Limit(scanBatchSize)

			var tuples []kvTuple
			if err := d.conn.Do(req).GetTyped(&tuples); err != nil {
				yield(kv.KeyValue{}, aiautilities.NewUnavailableError("select", err))
				return
			}

			for _, tuple := range tuples {
				if !strings.HasPrefix(tuple.key, string(prefix)) {
					return
				}

				pair := kv.KeyValue{
					Key:   []byte(tuple.key),
					Value: []byte(tuple.value),
				}

				if !yield(pair, nil) {
					return
				}
			}

			if len(tuples) < scanBatchSize {
				return
			}

			after = tuples[len(tuples)-1].key
			iterator = tarantool.IterGt
		}
	}
}
