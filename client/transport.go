// Package client talks to a chat feed server over HTTP or gRPC. It plays the role of the
// external collaborator of the feed: it owns the local identity of the user and renders
// the records it receives.
package client

import (
	"chat-feed/domain"
	"context"
)

// SubscribeRequest resumes after From, or opens a session with the last N records
// when Last is positive.
type SubscribeRequest struct {
	From domain.Cursor
	Last int
}

// Transport abstracts the protocol used by the CLI.
type Transport interface {
	Post(ctx context.Context, cmd domain.PostMessageCommand) (domain.MessageRecord, error)
	History(ctx context.Context, last int) ([]domain.MessageRecord, error)
	// Subscribe blocks, calling onMessage for every record, until the stream ends.
	// A nil error means the context was cancelled.
	Subscribe(ctx context.Context, req SubscribeRequest, onMessage func(domain.MessageRecord) error) error
	Close() error
}
