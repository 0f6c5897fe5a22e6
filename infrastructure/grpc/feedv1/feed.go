// Package feedv1 holds the wire contract of the chatfeed.v1.Feed gRPC service.
//
// The messages of feed.proto are plain structs encoded with protowire by the codec
// registered for the "proto" content-subtype, so any client generated from feed.proto
// can talk to the service. The same structs are the JSON bodies of the HTTP API.
package feedv1

import (
	"chat-feed/domain"
	"time"
)

const ServiceName = "chatfeed.v1.Feed"

type PostMessageRequest struct {
	SenderID          string `json:"senderId"`
	SenderDisplayName string `json:"senderDisplayName"`
	Text              string `json:"text"`
}

type PostMessageResponse struct {
	SequenceID uint64    `json:"sequenceId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type GetMessagesRequest struct {
	Last int `json:"last"`
}

type GetMessagesResponse struct {
	Messages []Message `json:"messages"`
}

// SubscribeRequest either resumes after From ("now" or a sequence id), or, when Last is
// positive, opens a session: the last N records are streamed first, then live ones.
type SubscribeRequest struct {
	From string `json:"from,omitempty"`
	Last int    `json:"last,omitempty"`
}

type Message struct {
	SequenceID        uint64    `json:"sequenceId"`
	SenderID          string    `json:"senderId"`
	SenderDisplayName string    `json:"senderDisplayName"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"createdAt"`
}

func FromRecord(m domain.MessageRecord) Message {
	return Message{
		SequenceID:        m.SequenceID,
		SenderID:          m.SenderID,
		SenderDisplayName: m.SenderDisplayName,
		Text:              m.Text,
		CreatedAt:         m.CreatedAt,
	}
}

func (m Message) ToRecord() domain.MessageRecord {
	return domain.MessageRecord{
		SequenceID:        m.SequenceID,
		SenderID:          m.SenderID,
		SenderDisplayName: m.SenderDisplayName,
		Text:              m.Text,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}
