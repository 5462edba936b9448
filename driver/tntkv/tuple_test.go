//nolint:testpackage
package tntkv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestKvTuple_EncodeMsgpack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tuple    kvTuple
		expected []byte
	}{
		{
			name:  "key and value",
			tuple: kvTuple{key: "test-key", value: "test-value"},
			expected: []byte{
				0x92, 0xa8, 0x74, 0x65, 0x73, 0x74, 0x2d, 0x6b, 0x65, 0x79,
				0xaa, 0x74, 0x65, 0x73, 0x74, 0x2d, 0x76, 0x61, 0x6c, 0x75,
				0x65,
			},
		},
		{
			name:     "empty key and value",
			tuple:    kvTuple{key: "", value: ""},
			expected: []byte{0x92, 0xa0, 0xa0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			encoder := msgpack.NewEncoder(&buf)

			require.NoError(t, tt.tuple.EncodeMsgpack(encoder))
			assert.Equal(t, tt.expected, buf.Bytes())
		})
	}
}

func TestKvTuple_DecodeMsgpack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		data        []byte
		expected    kvTuple
		expectError bool
	}{
		{
			name: "round trip",
			data: []byte{
				0x92, 0xa8, 0x74, 0x65, 0x73, 0x74, 0x2d, 0x6b, 0x65, 0x79,
				0xaa, 0x74, 0x65, 0x73, 0x74, 0x2d, 0x76, 0x61, 0x6c, 0x75,
				0x65,
			},
			expected: kvTuple{key: "test-key", value: "test-value"},
		},
		{
			name: "extra trailing field is skipped",
			// ['a', 'b', 1]
			data:     []byte{0x93, 0xa1, 0x61, 0xa1, 0x62, 0x01},
			expected: kvTuple{key: "a", value: "b"},
		},
		{
			name: "short tuple",
			// ['a']
			data:        []byte{0x91, 0xa1, 0x61},
			expectError: true,
		},
		{
			name:        "not an array",
			data:        []byte{0xa1, 0x61},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decoder := msgpack.NewDecoder(bytes.NewReader(tt.data))

			var tuple kvTuple

			err := tuple.DecodeMsgpack(decoder)

			if tt.expectError {
				require.Error(t, err)

				var decodingErr TupleDecodingError

				assert.ErrorAs(t, err, &decodingErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, tuple)
		})
	}
}

func TestKvTuple_DecodeShortTupleError(t *testing.T) {
	t.Parallel()

	decoder := msgpack.NewDecoder(bytes.NewReader([]byte{0x91, 0xa1, 0x61}))

	var tuple kvTuple

	err := tuple.DecodeMsgpack(decoder)
	require.ErrorIs(t, err, ErrShortTuple)
}
