package marshaller

// TypedMarshaller is a generic interface for typed marshalling operations.
type TypedMarshaller[T any] interface {
	Marshal(data T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// Typed adapts an untyped Marshaller to a concrete type.
type Typed[T any] struct {
	base Marshaller
}

// NewTyped creates a typed marshaller on top of base.
func NewTyped[T any](base Marshaller) Typed[T] {
	return Typed[T]{base: base}
}

// Marshal serializes the typed data with the underlying marshaller.
func (m Typed[T]) Marshal(data T) ([]byte, error) {
	return m.base.Marshal(data)
}

func zero[T any]() T {
	var out T
	return out
}

// Unmarshal deserializes data into a typed object.
func (m Typed[T]) Unmarshal(data []byte) (T, error) {
	var out T

	err := m.base.Unmarshal(data, &out)
	if err != nil {
		return zero[T](), err
	}

	return out, nil
}
