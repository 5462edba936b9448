// Package kv provides the raw key-value pair exchanged with storage drivers.
package kv

// KeyValue represents a single raw pair as stored by a backend.
type KeyValue struct {
	// Key is the serialized representation of the key.
	Key []byte
	// Value is the serialized representation of the value.
	Value []byte
}
