package tntkv

import (
	"fmt"
)

// TupleEncodingError represents an error that occurs while encoding a
// key-value tuple.
type TupleEncodingError struct {
	Text string
	Err  error
}

// Error returns the error message.
func (e TupleEncodingError) Error() string {
	return fmt.Sprintf("failed to encode tuple, %s: %s", e.Text, e.Err)
}

func (e TupleEncodingError) Unwrap() error {
	return e.Err
}

// NewTupleEncodingError returns a new tuple encoding error.
func NewTupleEncodingError(text string, err error) error {
	if err == nil {
		return nil
	}

	return TupleEncodingError{
		Text: text,
		Err:  err,
	}
}

// TupleDecodingError represents an error that occurs while decoding a
// key-value tuple.
type TupleDecodingError struct {
	Err error
}

// Error returns the error message.
func (e TupleDecodingError) Error() string {
	return fmt.Sprintf("failed to decode tuple: %s", e.Err)
}

func (e TupleDecodingError) Unwrap() error {
	return e.Err
}

// NewTupleDecodingError returns a new tuple decoding error.
func NewTupleDecodingError(err error) error {
	if err == nil {
		return nil
	}

	return TupleDecodingError{Err: err}
}
