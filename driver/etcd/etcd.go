// Package etcd provides an etcd implementation of the storage driver
// interface. It enables using etcd as the key-value storage backend.
package etcd

import (
	"context"
	"iter"

	etcd "go.etcd.io/etcd/client/v3"

	aiautilities "github.com/surgelove/aia-utilities"
	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/kv"
)

// Client defines the minimal interface needed for etcd operations.
// This allows for easier testing and mock implementations.
// *etcd.Client satisfies it through its embedded KV.
type Client interface {
	Get(ctx context.Context, key string, opts ...etcd.OpOption) (*etcd.GetResponse, error)
	Put(ctx context.Context, key string, val string, opts ...etcd.OpOption) (*etcd.PutResponse, error)
	Delete(ctx context.Context, key string, opts ...etcd.OpOption) (*etcd.DeleteResponse, error)
}

// Driver is an etcd implementation of the storage driver interface.
type Driver struct {
	client Client // etcd client interface.
}

var _ driver.Driver = (*Driver)(nil)

// New creates a new etcd driver instance using an existing etcd client.
// The client should be properly configured and connected to an etcd cluster.
func New(client Client) *Driver {
	return &Driver{client: client}
}

// Get implements the driver interface for exact-key reads.
func (d *Driver) Get(ctx context.Context, key []byte) (kv.KeyValue, bool, error) {
	resp, err := d.client.Get(ctx, string(key))
	if err != nil {
		return kv.KeyValue{}, false, aiautilities.NewUnavailableError("get", err)
	}

	if len(resp.Kvs) == 0 {
		return kv.KeyValue{}, false, nil
	}

	return kv.KeyValue{
		Key:   resp.Kvs[0].Key,
		Value: resp.Kvs[0].Value,
	}, true, nil
}

// Put implements the driver interface for writes.
func (d *Driver) Put(ctx context.Context, key []byte, value []byte) error {
	if _, err := d.client.Put(ctx, string(key), string(value)); err != nil {
		return aiautilities.NewUnavailableError("put", err)
	}

	return nil
}

// Delete implements the driver interface for deletes.
func (d *Driver) Delete(ctx context.Context, key []byte) error {
	if _, err := d.client.Delete(ctx, string(key)); err != nil {
		return aiautilities.NewUnavailableError("delete", err)
	}

	return nil
}

// Scan implements the driver interface for prefix enumeration.
// etcd serves a prefix range in one round trip; the response is then
// yielded lazily.
func (d *Driver) Scan(ctx context.Context, prefix []byte) iter.Seq2[kv.KeyValue, error] {
	return func(yield func(kv.KeyValue, error) bool) {
		resp, err := d.client.Get(ctx, string(prefix), etcd.WithPrefix())
		if err != nil {
			yield(kv.KeyValue{}, aiautilities.NewUnavailableError("range", err))
			return
		}

		for _, pair := range resp.Kvs {
			out := kv.KeyValue{
				Key:   pair.Key,
				Value: pair.Value,
			}

			if !yield(out, nil) {
				return
			}
		}
	}
}
