// Package record defines the field mapping stored under a single key.
// A record maps field names to scalar values that survive a codec
// round trip, e.g. a timestamp and a value field.
package record

import (
	"errors"
)

// TimestampField is the conventional field used for time-ordered reads.
const TimestampField = "timestamp"

// ErrEmpty is returned when a record contains no fields.
var ErrEmpty = errors.New("record has no fields")

// Record maps field names to scalar values.
// Field names must be non-empty; field values must be scalars
// (strings, booleans, integers or floats).
type Record map[string]any

// Validate checks that the record is non-empty and every field holds a
// representable scalar value. It returns ErrEmpty, an InvalidFieldError
// or an UnsupportedValueError.
func (r Record) Validate() error {
	if len(r) == 0 {
		return ErrEmpty
	}

	for name, value := range r {
		if name == "" {
			return errInvalidField(name, "field name must not be empty")
		}

		if !isScalar(value) {
			return errUnsupportedValue(name, value)
		}
	}

	return nil
}

// isScalar reports whether v belongs to the value kinds every codec in
// the library can store and read back.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// numeric converts a scalar to float64 when it holds a numeric kind.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Timestamp returns the numeric value of the timestamp field.
// ok is false when the field is absent or not numeric.
func (r Record) Timestamp() (float64, bool) {
	return numeric(r[TimestampField])
}

// Equal reports field-for-field equality with other. Numeric fields
// compare by value so that a record read back through a codec that
// widens integers still equals the record that was written.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}

	for name, value := range r {
		otherValue, ok := other[name]
		if !ok {
			return false
		}

		if !scalarEqual(value, otherValue) {
			return false
		}
	}

	return true
}

func scalarEqual(a, b any) bool {
	if na, ok := numeric(a); ok {
		nb, ok := numeric(b)
		return ok && na == nb
	}

	return a == b
}
