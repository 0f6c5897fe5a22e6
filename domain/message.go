// Package domain contains core concepts of the chat feed.
// This file defines the persisted message record.
// Records are immutable once the store has assigned them a sequence id.
package domain

import "time"

// MessageRecord is a single entry of the append-only feed.
type MessageRecord struct {
	SequenceID        uint64 // assigned by the store, strictly increasing
	SenderID          string
	SenderDisplayName string
	Text              string
	CreatedAt         time.Time // server-authoritative, UTC
}

// IsOutgoing reports whether the record was authored by the given sender.
func (m MessageRecord) IsOutgoing(senderID string) bool {
	return senderID != "" && m.SenderID == senderID
}

// Tail returns the sequence id of the last record, zero when records is empty.
func Tail(records []MessageRecord) uint64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].SequenceID
}
