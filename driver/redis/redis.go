// Package redis provides a Redis implementation of the storage driver
// interface on top of go-redis. It is the primary backend the library
// was built for.
package redis

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/redis/go-redis/v9"

	aiautilities "github.com/surgelove/aia-utilities"
	"github.com/surgelove/aia-utilities/driver"
	"github.com/surgelove/aia-utilities/kv"
)

// Client defines the minimal go-redis surface needed by the driver.
// This allows for easier testing and fake implementations.
// *redis.Client and *redis.ClusterClient both satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Driver is a Redis implementation of the storage driver interface.
type Driver struct {
	client Client // Redis client interface.
}

var _ driver.Driver = (*Driver)(nil)

// Connect creates a new Redis client from a URL such as
// redis://localhost:6379/0 and connects it to the server.
func Connect(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opts), nil
}

// New creates a new Redis driver instance using an existing client.
// The client should be properly configured and connected; closing it
// remains the caller's responsibility.
func New(client Client) *Driver {
	return &Driver{client: client}
}

// Get implements the driver interface for exact-key reads.
// A Redis nil reply is a miss, not an error.
func (d *Driver) Get(ctx context.Context, key []byte) (kv.KeyValue, bool, error) {
	raw, err := d.client.Get(ctx, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return kv.KeyValue{}, false, nil
	}

	if err != nil {
		return kv.KeyValue{}, false, aiautilities.NewUnavailableError("get", err)
	}

	return kv.KeyValue{
		Key:   append([]byte(nil), key...),
		Value: raw,
	}, true, nil
}

// Put implements the driver interface for writes. Values are stored
// without expiration.
func (d *Driver) Put(ctx context.Context, key []byte, value []byte) error {
	if err := d.client.Set(ctx, string(key), value, 0).Err(); err != nil {
		return aiautilities.NewUnavailableError("set", err)
	}

	return nil
}

// Delete implements the driver interface for deletes.
func (d *Driver) Delete(ctx context.Context, key []byte) error {
	if err := d.client.Del(ctx, string(key)).Err(); err != nil {
		return aiautilities.NewUnavailableError("del", err)
	}

	return nil
}

// Scan implements the driver interface for prefix enumeration using
// SCAN with a MATCH pattern, fetching each value with a GET per key as
// the cursor advances.
func (d *Driver) Scan(ctx context.Context, prefix []byte) iter.Seq2[kv.KeyValue, error] {
	return func(yield func(kv.KeyValue, error) bool) {
		var cursor uint64

		match := string(prefix) + "*"

		// SCAN guarantees at-least-once delivery over a full iteration,
		// so keys already yielded are tracked and suppressed.
		yielded := make(map[string]struct{})

		for {
			keys, next, err := d.client.Scan(ctx, cursor, match, 0).Result()
			if err != nil {
				yield(kv.KeyValue{}, aiautilities.NewUnavailableError("scan", err))
				return
			}

			for _, key := range keys {
				if _, ok := yielded[key]; ok {
					continue
				}

				raw, err := d.client.Get(ctx, key).Bytes()
				if errors.Is(err, redis.Nil) {
					// Deleted between SCAN and GET.
					continue
				}

				if err != nil {
					yield(kv.KeyValue{}, aiautilities.NewUnavailableError("get", err))
					return
				}

				yielded[key] = struct{}{}

				pair := kv.KeyValue{
					Key:   []byte(key),
					Value: raw,
				}

				if !yield(pair, nil) {
					return
				}
			}

			if next == 0 {
				return
			}

			cursor = next
		}
	}
}
