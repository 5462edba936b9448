package record

import (
	"fmt"
)

// InvalidFieldError represents an error for a malformed field name.
type InvalidFieldError struct {
	Field   string
	Problem string
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field '%s': %s", e.Field, e.Problem)
}

func errInvalidField(field string, problem string) error {
	return InvalidFieldError{
		Field:   field,
		Problem: problem,
	}
}

// UnsupportedValueError represents an error for a field value that no
// codec can represent in the store's wire format.
type UnsupportedValueError struct {
	Field string
	Value any
}

func (e UnsupportedValueError) Error() string {
	return fmt.Sprintf("field '%s' holds unsupported value of type %T", e.Field, e.Value)
}

func errUnsupportedValue(field string, value any) error {
	return UnsupportedValueError{
		Field: field,
		Value: value,
	}
}
