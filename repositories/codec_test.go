package repositories

import (
	"chat-feed/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestDecodeRecord_Skips_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	record := domain.MessageRecord{
		SequenceID: 9,
		SenderID:   "u1",
		Text:       "hello",
		CreatedAt:  time.Unix(0, 1714564800000000000).UTC(),
	}

	// Given an encoded record followed by a field written by a newer version
	raw := encodeRecord(record)
	raw = protowire.AppendTag(raw, 42, protowire.BytesType)
	raw = protowire.AppendString(raw, "reaction")

	// When it is decoded
	decoded, err := decodeRecord(raw)

	// Then the known fields are kept
	req.NoError(err)
	req.Equal(record, decoded)
}

func TestDecodeRecord_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := decodeRecord([]byte{0xff, 0xff, 0xff})
	req.Error(err)

	// A record without sequence id is not a record
	raw := protowire.AppendTag(nil, fieldText, protowire.BytesType)
	raw = protowire.AppendString(raw, "orphan")
	_, err = decodeRecord(raw)
	req.Error(err)
}
