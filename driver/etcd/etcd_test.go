package etcd_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	etcdclient "go.etcd.io/etcd/client/v3"

	aiautilities "github.com/surgelove/aia-utilities"
	etcddriver "github.com/surgelove/aia-utilities/driver/etcd"
	"github.com/surgelove/aia-utilities/kv"
)

// fakeClient implements the driver's client interface over a map.
// A Get carrying options is treated as the driver's prefix range.
type fakeClient struct {
	data map[string]string
	err  error
}

func (f *fakeClient) Get(_ context.Context, key string, opts ...etcdclient.OpOption) (*etcdclient.GetResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	resp := &etcdclient.GetResponse{}

	if len(opts) == 0 {
		if value, ok := f.data[key]; ok {
			resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{
				Key:   []byte(key),
				Value: []byte(value),
			})
		}

		resp.Count = int64(len(resp.Kvs))

		return resp, nil
	}

	var keys []string

	for candidate := range f.data {
		if strings.HasPrefix(candidate, key) {
			keys = append(keys, candidate)
		}
	}

	sort.Strings(keys)

	for _, candidate := range keys {
		resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{
			Key:   []byte(candidate),
			Value: []byte(f.data[candidate]),
		})
	}

	resp.Count = int64(len(resp.Kvs))

	return resp, nil
}

func (f *fakeClient) Put(_ context.Context, key string, val string, _ ...etcdclient.OpOption) (*etcdclient.PutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	if f.data == nil {
		f.data = make(map[string]string)
	}

	f.data[key] = val

	return &etcdclient.PutResponse{}, nil
}

func (f *fakeClient) Delete(_ context.Context, key string, _ ...etcdclient.OpOption) (*etcdclient.DeleteResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	delete(f.data, key)

	return &etcdclient.DeleteResponse{}, nil
}

func TestDriver_GetPutDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &fakeClient{data: map[string]string{}}
	drv := etcddriver.New(client)

	_, found, err := drv.Get(ctx, []byte("user:1"))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, drv.Put(ctx, []byte("user:1"), []byte("payload")))

	pair, found, err := drv.Get(ctx, []byte("user:1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("payload"), pair.Value)

	require.NoError(t, drv.Delete(ctx, []byte("user:1")))

	_, found, err = drv.Get(ctx, []byte("user:1"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDriver_Scan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &fakeClient{data: map[string]string{
		"user:1":  "one",
		"user:2":  "two",
		"order:1": "other",
	}}
	drv := etcddriver.New(client)

	var pairs []kv.KeyValue

	for pair, err := range drv.Scan(ctx, []byte("user:")) {
		require.NoError(t, err)
		pairs = append(pairs, pair)
	}

	require.Len(t, pairs, 2)
	assert.Equal(t, "user:1", string(pairs[0].Key))
	assert.Equal(t, "user:2", string(pairs[1].Key))
}

func TestDriver_TransportFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cause := errors.New("cluster unreachable")
	drv := etcddriver.New(&fakeClient{err: cause})

	_, _, err := drv.Get(ctx, []byte("k"))
	require.ErrorIs(t, err, aiautilities.ErrUnavailable)
	require.ErrorIs(t, err, cause)

	require.ErrorIs(t, drv.Put(ctx, []byte("k"), []byte("v")), aiautilities.ErrUnavailable)
	require.ErrorIs(t, drv.Delete(ctx, []byte("k")), aiautilities.ErrUnavailable)

	var scanErr error
	for _, err := range drv.Scan(ctx, []byte("k")) {
		scanErr = err
	}

	require.ErrorIs(t, scanErr, aiautilities.ErrUnavailable)
}
