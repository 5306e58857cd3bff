package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec carries plain Go message structs over Connect as
// application/json. It replaces Connect's default protobuf JSON codec,
// which only accepts proto.Message values.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
