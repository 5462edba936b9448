package tntkv

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrShortTuple is returned when a stored tuple has fewer fields than
// the key-value space format requires.
var ErrShortTuple = errors.New("tuple has fewer than 2 fields")

const (
	// tupleArrayLen is the number of fields a key-value tuple carries.
	tupleArrayLen = 2
)

// kvTuple is the {key, value} tuple layout of the key-value space.
type kvTuple struct {
	key   string
	value string
}

func (t kvTuple) EncodeMsgpack(encoder *msgpack.Encoder) error {
	err := encoder.EncodeArrayLen(tupleArrayLen)
	if err != nil {
		return NewTupleEncodingError("encode tuple array length", err)
	}

	err = encoder.EncodeString(t.key)
	if err != nil {
		return NewTupleEncodingError("encode tuple key", err)
	}

	err = encoder.EncodeString(t.value)
	if err != nil {
		return NewTupleEncodingError("encode tuple value", err)
	}

	return nil
}

func (t *kvTuple) DecodeMsgpack(decoder *msgpack.Decoder) error {
	length, err := decoder.DecodeArrayLen()
	if err != nil {
		return NewTupleDecodingError(err)
	}

	if length < tupleArrayLen {
		return NewTupleDecodingError(fmt.Errorf("%w: got %d", ErrShortTuple, length))
	}

	t.key, err = decoder.DecodeString()
	if err != nil {
		return NewTupleDecodingError(err)
	}

	t.value, err = decoder.DecodeString()
	if err != nil {
		return NewTupleDecodingError(err)
	}

	// Spaces may carry extra trailing fields; they are not part of the
	// key-value contract.
	for range length - tupleArrayLen {
		if err := decoder.Skip(); err != nil {
			return NewTupleDecodingError(err)
		}
	}

	return nil
}
