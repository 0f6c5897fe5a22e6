//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-feed/domain"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ILogBackend is the durable side of the feed.
// Append must assign the next sequence id and persist the record in one atomic operation.
type ILogBackend interface {
	Append(ctx context.Context, cmd domain.PostMessageCommand, at time.Time) (domain.MessageRecord, error)
	// ReadLast returns up to n records, oldest first.
	ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error)
	// ReadAfter returns up to limit records with a sequence id greater than after, oldest first.
	ReadAfter(ctx context.Context, after uint64, limit int) ([]domain.MessageRecord, error)
	LastSequence(ctx context.Context) (uint64, error)
	Close() error
}

// ISubscription is a live, ordered stream of records.
type ISubscription interface {
	ID() string
	C() <-chan domain.MessageRecord
	// Err is the terminal error once C is closed, nil after a clean Close.
	Err() error
	// Cursor is the sequence id of the last delivered record.
	Cursor() uint64
	Close()
}

type IMessageStore interface {
	Append(ctx context.Context, senderID, senderDisplayName, text string) (domain.MessageRecord, error)
	ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error)
	SubscribeFrom(ctx context.Context, cursor domain.Cursor) (ISubscription, error)
}

type IRegistry interface {
	Subscribe(sub ISubscription)
	Unsubscribe(id string)
	Subscriptions() []ISubscription
	Len() int
}

// ITextFilter rewrites the text of a message before it is persisted.
type ITextFilter interface {
	// Apply returns the filtered text and the number of masked occurrences.
	Apply(text string) (string, int)
}

// IFeedMonitor counts what happens on the feed.
type IFeedMonitor interface {
	IncrAppended()
	IncrRejected()
	IncrCensored(n int)
	IncrStorageErrors()
	IncrDelivered()
}
