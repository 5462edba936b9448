package aiautilities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by read misses: no record exists at the key.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is matched by transport failures: the underlying
	// store could not be reached. The library never retries; callers
	// own any retry policy.
	ErrUnavailable = errors.New("store unavailable")

	// ErrSerialization is matched by values that cannot be represented
	// in the store's wire format.
	ErrSerialization = errors.New("serialization failed")

	// ErrInvalidArgument is matched by malformed inputs such as an
	// empty key or an empty record.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError represents a read miss for a specific key.
type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no record under key '%s'", e.Key)
}

func (e NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError returns a new read-miss error for key.
func NewNotFoundError(key string) error {
	return NotFoundError{Key: key}
}

// UnavailableError represents a connection or transport failure while
// talking to the underlying store.
type UnavailableError struct {
	Op  string
	Err error
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %s", e.Op, e.Err)
}

func (e UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// NewUnavailableError wraps a backend transport failure observed
// during the named operation. Returns nil when err is nil.
func NewUnavailableError(op string, err error) error {
	if err == nil {
		return nil
	}

	return UnavailableError{Op: op, Err: err}
}

// SerializationError represents a value that is not representable in
// the store's wire format.
type SerializationError struct {
	Err error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("serialization failed: %s", e.Err)
}

func (e SerializationError) Unwrap() []error {
	return []error{ErrSerialization, e.Err}
}

// NewSerializationError wraps a codec failure. Returns nil when err is nil.
func NewSerializationError(err error) error {
	if err == nil {
		return nil
	}

	return SerializationError{Err: err}
}

// InvalidArgumentError represents a malformed input to a store operation.
type InvalidArgumentError struct {
	Name    string
	Problem string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Problem)
}

func (e InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NewInvalidArgumentError returns a new argument validation error.
func NewInvalidArgumentError(name string, problem string) error {
	return InvalidArgumentError{
		Name:    name,
		Problem: problem,
	}
}
