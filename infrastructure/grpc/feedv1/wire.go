package feedv1

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Field numbers follow feed.proto.

func (m *PostMessageRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.SenderID)
	b = appendString(b, 2, m.SenderDisplayName)
	return appendString(b, 3, m.Text), nil
}

func (m *PostMessageRequest) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(num, v, &m.SenderID)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(num, v, &m.SenderDisplayName)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(num, v, &m.Text)
		}
		return 0, nil
	})
}

func (m *PostMessageResponse) appendWire(b []byte) ([]byte, error) {
	b = appendUint(b, 1, m.SequenceID)
	return appendTimestamp(b, 2, m.CreatedAt)
}

func (m *PostMessageResponse) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeUint(num, v, &m.SequenceID)
		case num == 2 && typ == protowire.BytesType:
			return consumeTimestamp(num, v, &m.CreatedAt)
		}
		return 0, nil
	})
}

func (m *GetMessagesRequest) appendWire(b []byte) ([]byte, error) {
	return appendInt32(b, 1, m.Last), nil
}

func (m *GetMessagesRequest) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeInt32(num, v, &m.Last)
		}
		return 0, nil
	})
}

func (m *GetMessagesResponse) appendWire(b []byte) ([]byte, error) {
	for i := range m.Messages {
		raw, err := m.Messages[i].appendWire(nil)
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, raw)
	}
	return b, nil
}

func (m *GetMessagesResponse) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		raw, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
		}
		var message Message
		if err := message.consumeWire(raw); err != nil {
			return 0, err
		}
		m.Messages = append(m.Messages, message)
		return n, nil
	})
}

func (m *SubscribeRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.From)
	return appendInt32(b, 2, m.Last), nil
}

func (m *SubscribeRequest) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(num, v, &m.From)
		case num == 2 && typ == protowire.VarintType:
			return consumeInt32(num, v, &m.Last)
		}
		return 0, nil
	})
}

func (m *Message) appendWire(b []byte) ([]byte, error) {
	b = appendUint(b, 1, m.SequenceID)
	b = appendString(b, 2, m.SenderID)
	b = appendString(b, 3, m.SenderDisplayName)
	b = appendString(b, 4, m.Text)
	return appendTimestamp(b, 5, m.CreatedAt)
}

func (m *Message) consumeWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeUint(num, v, &m.SequenceID)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(num, v, &m.SenderID)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(num, v, &m.SenderDisplayName)
		case num == 4 && typ == protowire.BytesType:
			return consumeString(num, v, &m.Text)
		case num == 5 && typ == protowire.BytesType:
			return consumeTimestamp(num, v, &m.CreatedAt)
		}
		return 0, nil
	})
}

// walkFields calls visit with the value of every field of b. visit returns the length
// it consumed, 0 skips the field.
func walkFields(b []byte, visit func(num protowire.Number, typ protowire.Type, v []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		n, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
		}
		b = b[n:]
	}
	return nil
}

func appendString(b []byte, num protowire.Number, value string) []byte {
	if value == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, value)
}

func appendUint(b []byte, num protowire.Number, value uint64) []byte {
	if value == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, value)
}

// appendInt32 sign-extends negative values, as protobuf does for int32.
func appendInt32(b []byte, num protowire.Number, value int) []byte {
	if value == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(int32(value))))
}

func appendTimestamp(b []byte, num protowire.Number, t time.Time) ([]byte, error) {
	if t.IsZero() {
		return b, nil
	}
	raw, err := proto.Marshal(timestamppb.New(t))
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, raw), nil
}

func consumeString(num protowire.Number, b []byte, dst *string) (int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
	}
	*dst = v
	return n, nil
}

func consumeUint(num protowire.Number, b []byte, dst *uint64) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
	}
	*dst = v
	return n, nil
}

func consumeInt32(num protowire.Number, b []byte, dst *int) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
	}
	*dst = int(int32(v))
	return n, nil
}

func consumeTimestamp(num protowire.Number, b []byte, dst *time.Time) (int, error) {
	raw, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
	}
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(raw, &ts); err != nil {
		return 0, fmt.Errorf("decode field %d: %w", num, err)
	}
	*dst = ts.AsTime()
	return n, nil
}
