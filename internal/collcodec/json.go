// Package collcodec supplies a cosmossdk.io/collections ValueCodec for
// plain Go structs that do not have generated protobuf marshallers. The
// wire-level codec a production host ultimately uses is an external
// collaborator; this package stands in for it in this library's own
// storage layer.
package collcodec

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections"
)

// JSONValue returns a collections.ValueCodec[T] that (de)serializes T via
// encoding/json.
func JSONValue[T any]() collections.ValueCodec[T] {
	return jsonValueCodec[T]{}
}

type jsonValueCodec[T any] struct{}

func (jsonValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValueCodec[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (jsonValueCodec[T]) Stringify(value T) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

func (jsonValueCodec[T]) ValueType() string {
	var v T
	return fmt.Sprintf("json/%T", v)
}
