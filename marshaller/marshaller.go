// Package marshaller represents interfaces to transformation between
// records and the byte form drivers store.
package marshaller

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Marshaller - serialization by default (JSON/msgpack/YAML),
// implements one time for all objects.
// Required for the store facade to set the marshalling format for any
// record and as recommendation for developers of wrapper types.
type Marshaller interface {
	Marshal(data any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

// JSONMarshaller serializes values as JSON, the default wire format
// for stored records.
type JSONMarshaller struct{}

// NewJSONMarshaller creates a new JSONMarshaller object.
func NewJSONMarshaller() JSONMarshaller {
	return JSONMarshaller{}
}

// Marshal implements interface.
func (m JSONMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := json.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal implements interface.
func (m JSONMarshaller) Unmarshal(data []byte, out any) error {
	err := json.Unmarshal(data, out)
	if err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// MsgpackMarshaller serializes values as msgpack.
type MsgpackMarshaller struct{}

// NewMsgpackMarshaller creates a new MsgpackMarshaller object.
func NewMsgpackMarshaller() MsgpackMarshaller {
	return MsgpackMarshaller{}
}

// Marshal implements interface.
func (m MsgpackMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal implements interface.
func (m MsgpackMarshaller) Unmarshal(data []byte, out any) error {
	err := msgpack.Unmarshal(data, out)
	if err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// YAMLMarshaller serializes values as YAML.
type YAMLMarshaller struct{}

// NewYamlMarshaller creates a new YAMLMarshaller object.
func NewYamlMarshaller() YAMLMarshaller {
	return YAMLMarshaller{}
}

// Marshal implements interface.
func (m YAMLMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := yaml.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal implements interface.
func (m YAMLMarshaller) Unmarshal(data []byte, out any) error {
	err := yaml.Unmarshal(data, out)
	if err != nil {
		return errUnmarshal(err)
	}

	return nil
}
