package typed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiautilities "github.com/surgelove/aia-utilities"
	"github.com/surgelove/aia-utilities/driver/inmem"
	"github.com/surgelove/aia-utilities/marshaller"
	"github.com/surgelove/aia-utilities/typed"
)

type tick struct {
	Timestamp int64  `json:"timestamp" msgpack:"timestamp"`
	Value     string `json:"value" msgpack:"value"`
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := typed.NewJSON[tick](inmem.New())

	in := tick{Timestamp: 1700000000, Value: "hello"}

	require.NoError(t, store.Write(ctx, "tick:1", in))

	out, err := store.ReadOne(ctx, "tick:1")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_ReadOne_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := typed.NewJSON[tick](inmem.New())

	_, err := store.ReadOne(ctx, "missing")
	require.ErrorIs(t, err, aiautilities.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := typed.NewJSON[tick](inmem.New())

	require.NoError(t, store.Write(ctx, "tick:1", tick{Value: "x"}))
	require.NoError(t, store.Delete(ctx, "tick:1"))

	_, err := store.ReadOne(ctx, "tick:1")
	require.ErrorIs(t, err, aiautilities.ErrNotFound)
}

func TestStore_ReadAllByPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := typed.NewJSON[tick](inmem.New())

	require.NoError(t, store.Write(ctx, "tick:1", tick{Timestamp: 1, Value: "one"}))
	require.NoError(t, store.Write(ctx, "tick:2", tick{Timestamp: 2, Value: "two"}))
	require.NoError(t, store.Write(ctx, "other:1", tick{Timestamp: 3, Value: "other"}))

	var values []typed.NamedValue[tick]

	for named, err := range store.ReadAllByPrefix(ctx, "tick:") {
		require.NoError(t, err)
		values = append(values, named)
	}

	require.Len(t, values, 2)
	assert.Equal(t, "tick:1", values[0].Key)
	assert.Equal(t, "one", values[0].Value.Value)
	assert.Equal(t, "tick:2", values[1].Key)
}

func TestStore_ReadAllByPrefix_ReportsUndecodable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := inmem.New()
	store := typed.NewJSON[tick](drv)

	require.NoError(t, store.Write(ctx, "tick:1", tick{Value: "good"}))
	require.NoError(t, drv.Put(ctx, []byte("tick:2"), []byte("not json")))

	var (
		decoded int
		failed  int
	)

	for _, err := range store.ReadAllByPrefix(ctx, "tick:") {
		if err != nil {
			require.ErrorIs(t, err, aiautilities.ErrSerialization)

			failed++

			continue
		}

		decoded++
	}

	assert.Equal(t, 1, decoded)
	assert.Equal(t, 1, failed, "a typed space reports rather than skips foreign entries")
}

func TestStore_ArgumentValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := typed.New[tick](inmem.New(),
		marshaller.NewTyped[tick](marshaller.NewMsgpackMarshaller()))

	require.ErrorIs(t, store.Write(ctx, "", tick{}), aiautilities.ErrInvalidArgument)
	require.ErrorIs(t, store.Delete(ctx, ""), aiautilities.ErrInvalidArgument)

	_, err := store.ReadOne(ctx, "")
	require.ErrorIs(t, err, aiautilities.ErrInvalidArgument)

	var prefixErr error
	for _, err := range store.ReadAllByPrefix(ctx, "") {
		prefixErr = err
	}

	require.ErrorIs(t, prefixErr, aiautilities.ErrInvalidArgument)
}
