// Package runtime serves the feed: the ordered message store, live subscriptions
// and the client-facing sessions combining history and live delivery.
package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBatchSize    = 256
	DefaultPollInterval = time.Second
)

var _ contract.IMessageStore = (*MessageStore)(nil)

// MessageStore is the append-only log of the feed.
// Appends are serialised so that sequence ids are assigned in commit order, readers are
// never blocked by each other. Every append wakes the subscriptions, which then read the
// backend strictly after their own cursor.
type MessageStore struct {
	mu           sync.Mutex // serialises appends
	log          *slog.Logger
	backend      contract.ILogBackend
	registry     contract.IRegistry
	maxLength    int
	batchSize    int
	pollInterval time.Duration
	filter       contract.ITextFilter
	monitor      contract.IFeedMonitor

	notifyMu sync.Mutex
	notifyCh chan struct{}

	lifecycle sync.Mutex // guards closed against pumps.Add
	closeOnce sync.Once
	closed    chan struct{}
	pumps     sync.WaitGroup
}

// StoreOption customises a MessageStore.
type StoreOption func(*MessageStore)

// WithTextFilter rewrites every accepted text before it is persisted.
func WithTextFilter(filter contract.ITextFilter) StoreOption {
	return func(s *MessageStore) { s.filter = filter }
}

// WithMonitor reports appends, rejections and deliveries to monitor.
func WithMonitor(monitor contract.IFeedMonitor) StoreOption {
	return func(s *MessageStore) { s.monitor = monitor }
}

// NewMessageStore builds a store on top of backend.
// maxLength bounds the text of a message in runes (0 disables the check).
// pollInterval re-reads the backend when no local append happened, which picks up
// records written by other processes sharing the backend (0 disables polling).
func NewMessageStore(log *slog.Logger, backend contract.ILogBackend, registry contract.IRegistry,
	maxLength, batchSize int, pollInterval time.Duration, opts ...StoreOption) *MessageStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	s := &MessageStore{
		log:          log,
		backend:      backend,
		registry:     registry,
		maxLength:    maxLength,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		notifyCh:     make(chan struct{}),
		closed:       make(chan struct{}),
		monitor:      noopMonitor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append validates and persists a message, then wakes every live subscription.
func (s *MessageStore) Append(ctx context.Context, senderID, senderDisplayName, text string) (domain.MessageRecord, error) {
	cmd := domain.PostMessageCommand{
		SenderID:          senderID,
		SenderDisplayName: senderDisplayName,
		Text:              text,
	}
	if err := cmd.Validate(s.maxLength); err != nil {
		s.monitor.IncrRejected()
		return domain.MessageRecord{}, err
	}
	if s.isClosed() {
		return domain.MessageRecord{}, fmt.Errorf("%w: store is closed", errors.ErrInvalidState)
	}
	cmd = cmd.Normalize()
	if s.filter != nil {
		var masked int
		cmd.Text, masked = s.filter.Apply(cmd.Text)
		s.monitor.IncrCensored(masked)
	}

	s.mu.Lock()
	record, err := s.backend.Append(ctx, cmd, time.Now())
	s.mu.Unlock()
	if err != nil {
		s.monitor.IncrStorageErrors()
		s.log.Warn("Append failed", "sender_id", cmd.SenderID, "error", err)
		return domain.MessageRecord{}, err
	}
	s.monitor.IncrAppended()

	s.log.Debug("Message appended", "sequence_id", record.SequenceID, "sender_id", record.SenderID)
	s.wake()
	return record, nil
}

// ReadLast returns up to n of the most recent records, oldest first.
func (s *MessageStore) ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error) {
	if err := (domain.GetMessageCommand{Last: n}).Validate(); err != nil {
		return nil, err
	}
	return s.backend.ReadLast(ctx, n)
}

// Tail returns the sequence id of the last committed record, 0 on an empty log.
func (s *MessageStore) Tail(ctx context.Context) (uint64, error) {
	return s.backend.LastSequence(ctx)
}

// SubscribeFrom registers a subscription delivering every record with a sequence id
// greater than cursor, in order. domain.Now starts from the current tail.
// The subscription ends when ctx is done, when it is closed, or when the store closes.
func (s *MessageStore) SubscribeFrom(ctx context.Context, cursor domain.Cursor) (contract.ISubscription, error) {
	start := cursor.Seq()
	if cursor.IsNow() {
		tail, err := s.backend.LastSequence(ctx)
		if err != nil {
			return nil, err
		}
		start = tail
	}

	sub := newSubscription(ctx, s, uuid.NewString(), start)
	s.lifecycle.Lock()
	if s.isClosed() {
		s.lifecycle.Unlock()
		sub.cancel()
		return nil, fmt.Errorf("%w: store is closed", errors.ErrInvalidState)
	}
	s.registry.Subscribe(sub)
	s.pumps.Add(1)
	s.lifecycle.Unlock()
	go func() {
		defer s.pumps.Done()
		sub.pump()
	}()
	s.log.Debug("Subscription registered", "subscription_id", sub.ID(), "cursor", start)
	return sub, nil
}

// ActiveSubscriptions is the number of live subscriptions.
func (s *MessageStore) ActiveSubscriptions() int {
	return s.registry.Len()
}

// Subscriptions lists the live subscriptions ordered by id.
func (s *MessageStore) Subscriptions() []contract.ISubscription {
	subs := s.registry.Subscriptions()
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID() < subs[j].ID() })
	return subs
}

// Close ends every subscription with errors.ErrSubscriptionClosed, waits for their
// goroutines and closes the backend.
func (s *MessageStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.log.Info("Closing message store", "subscriptions", s.registry.Len())
		s.lifecycle.Lock()
		close(s.closed)
		s.lifecycle.Unlock()
		s.pumps.Wait()
		err = s.backend.Close()
	})
	return err
}

func (s *MessageStore) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// waitChannel must be taken before reading the backend, so that an append committed
// after the read always closes the channel the reader is about to wait on.
func (s *MessageStore) waitChannel() <-chan struct{} {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	return s.notifyCh
}

func (s *MessageStore) wake() {
	s.notifyMu.Lock()
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
	s.notifyMu.Unlock()
}

type noopMonitor struct{}

func (noopMonitor) IncrAppended()      {}
func (noopMonitor) IncrRejected()      {}
func (noopMonitor) IncrCensored(int)   {}
func (noopMonitor) IncrStorageErrors() {}
func (noopMonitor) IncrDelivered()     {}
