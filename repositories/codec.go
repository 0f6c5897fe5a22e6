package repositories

import (
	"chat-feed/domain"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored with the protobuf wire format of
//
//	message StoredMessage {
//	  uint64 sequence_id = 1;
//	  string sender_id = 2;
//	  string sender_display_name = 3;
//	  string text = 4;
//	  int64 created_at = 5; // unix nanoseconds
//	}
const (
	fieldSequenceID protowire.Number = iota + 1
	fieldSenderID
	fieldSenderDisplayName
	fieldText
	fieldCreatedAt
)

func encodeRecord(m domain.MessageRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldSequenceID, protowire.VarintType)
	b = protowire.AppendVarint(b, m.SequenceID)
	b = appendString(b, fieldSenderID, m.SenderID)
	b = appendString(b, fieldSenderDisplayName, m.SenderDisplayName)
	b = appendString(b, fieldText, m.Text)
	b = protowire.AppendTag(b, fieldCreatedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.CreatedAt.UnixNano()))
	return b
}

func appendString(b []byte, num protowire.Number, value string) []byte {
	if value == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, value)
}

func decodeRecord(b []byte) (domain.MessageRecord, error) {
	var m domain.MessageRecord
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return domain.MessageRecord{}, fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldSequenceID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return domain.MessageRecord{}, fmt.Errorf("decode sequence id: %w", protowire.ParseError(n))
			}
			m.SequenceID = v
			b = b[n:]
		case num == fieldCreatedAt && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return domain.MessageRecord{}, fmt.Errorf("decode created at: %w", protowire.ParseError(n))
			}
			m.CreatedAt = time.Unix(0, int64(v)).UTC()
			b = b[n:]
		case typ == protowire.BytesType && num >= fieldSenderID && num <= fieldText:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return domain.MessageRecord{}, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
			}
			switch num {
			case fieldSenderID:
				m.SenderID = v
			case fieldSenderDisplayName:
				m.SenderDisplayName = v
			case fieldText:
				m.Text = v
			}
			b = b[n:]
		default:
			// Unknown fields are skipped so older binaries can read newer records.
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return domain.MessageRecord{}, fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if m.SequenceID == 0 {
		return domain.MessageRecord{}, fmt.Errorf("record without sequence id")
	}
	return m, nil
}
