package feedv1

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
	"google.golang.org/grpc/mem"
)

// wireMessage is implemented by the messages of feed.proto, encoded with protowire.
type wireMessage interface {
	appendWire(b []byte) ([]byte, error)
	consumeWire(b []byte) error
}

// codec replaces the "proto" codec: feed messages use their own wire encoding and any
// other value goes through the default protobuf codec.
type codec struct {
	fallback encoding.CodecV2
}

func (c codec) Marshal(v any) (mem.BufferSlice, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return c.fallback.Marshal(v)
	}
	b, err := m.appendWire(nil)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return mem.BufferSlice{mem.SliceBuffer(b)}, nil
}

func (c codec) Unmarshal(data mem.BufferSlice, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return c.fallback.Unmarshal(data, v)
	}
	if err := m.consumeWire(data.Materialize()); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (codec) Name() string { return grpcproto.Name }

func init() {
	encoding.RegisterCodecV2(codec{fallback: encoding.GetCodecV2(grpcproto.Name)})
}
