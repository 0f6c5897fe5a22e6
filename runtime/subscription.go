package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"
)

var _ contract.ISubscription = (*Subscription)(nil)

// Subscription delivers the records of a store after a cursor, in sequence order,
// on an unbuffered channel.
//
// It never pushes records it was handed: on every wake-up it reads the backend strictly
// after the last delivered sequence id. A record appended between two reads is therefore
// picked up exactly once, whatever the timing of the notification.
type Subscription struct {
	id     string
	store  *MessageStore
	out    chan domain.MessageRecord
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	cursor atomic.Uint64

	closing atomic.Bool
	mu      sync.Mutex
	err     error
}

func newSubscription(parent context.Context, store *MessageStore, id string, cursor uint64) *Subscription {
	ctx, cancel := context.WithCancel(parent)
	sub := &Subscription{
		id:     id,
		store:  store,
		out:    make(chan domain.MessageRecord),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	sub.cursor.Store(cursor)
	return sub
}

func (s *Subscription) ID() string { return s.id }

// C is closed once the subscription terminates, Err then tells why.
func (s *Subscription) C() <-chan domain.MessageRecord { return s.out }

// Cursor is the sequence id of the last delivered record (or the start cursor).
func (s *Subscription) Cursor() uint64 { return s.cursor.Load() }

// Done is closed when the delivery goroutine has exited.
func (s *Subscription) Done() <-chan struct{} { return s.done }

func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the delivery and waits for it to exit. A send already racing with the
// cancellation may still complete, no other record is delivered once Close returns.
// Close is idempotent and safe to call from any goroutine, including concurrently with
// a receive on C.
func (s *Subscription) Close() {
	s.closing.Store(true)
	s.cancel()
	<-s.done
}

func (s *Subscription) pump() {
	defer close(s.done)
	defer close(s.out)
	defer s.store.registry.Unsubscribe(s.id)
	defer s.cancel()

	var tick <-chan time.Time
	if s.store.pollInterval > 0 {
		ticker := time.NewTicker(s.store.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		wait := s.store.waitChannel()
		records, err := s.store.backend.ReadAfter(s.ctx, s.Cursor(), s.store.batchSize)
		if err != nil {
			if s.ctx.Err() != nil {
				err = nil
			}
			s.finish(err)
			return
		}
		for _, record := range records {
			if record.SequenceID <= s.Cursor() {
				continue
			}
			select {
			case <-s.ctx.Done():
				s.finish(nil)
				return
			case <-s.store.closed:
				s.finish(errors.ErrSubscriptionClosed)
				return
			case s.out <- record:
				s.cursor.Store(record.SequenceID)
				s.store.monitor.IncrDelivered()
			}
		}
		if len(records) == s.store.batchSize {
			continue
		}

		select {
		case <-s.ctx.Done():
			s.finish(nil)
			return
		case <-s.store.closed:
			s.finish(errors.ErrSubscriptionClosed)
			return
		case <-wait:
		case <-tick:
		}
	}
}

// finish records the terminal error. A Close requested by the owner is a clean end,
// a cancelled parent context surfaces as the context error.
func (s *Subscription) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return
	}
	if err == nil {
		err = s.ctx.Err()
	}
	s.err = err
	if stderrors.Is(err, errors.ErrStorageUnavailable) {
		s.store.log.Warn("Subscription terminated", "subscription_id", s.id,
			"cursor", s.Cursor(), "error", err)
		return
	}
	s.store.log.Debug("Subscription ended", "subscription_id", s.id, "cursor", s.Cursor(), "reason", err)
}
