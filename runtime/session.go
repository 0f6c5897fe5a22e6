package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"context"
	"fmt"
	"sync"
)

type SessionState int

const (
	Unopened SessionState = iota
	Opened
	Closed
)

func (s SessionState) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Opened:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// FeedSession combines one bounded history read with one live subscription.
// The live cursor is the tail of the history snapshot, so a record is either in the
// history or delivered live, never both and never neither.
type FeedSession struct {
	mu    sync.Mutex
	store contract.IMessageStore
	state SessionState
	live  contract.ISubscription
}

func NewFeedSession(store contract.IMessageStore) *FeedSession {
	return &FeedSession{store: store}
}

func (f *FeedSession) State() SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Open reads the last n records and subscribes right after the last of them.
// An empty history means the log was empty at read time, the subscription then starts
// at the beginning of the log rather than at the tail, which would skip a record
// committed in between. A failed read leaves the session unopened so Open can be retried.
func (f *FeedSession) Open(ctx context.Context, n int) ([]domain.MessageRecord, contract.ISubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Unopened {
		return nil, nil, fmt.Errorf("%w: session is %s", errors.ErrInvalidState, f.state)
	}

	history, err := f.store.ReadLast(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	live, err := f.store.SubscribeFrom(ctx, domain.After(domain.Tail(history)))
	if err != nil {
		return nil, nil, err
	}
	f.live = live
	f.state = Opened
	return history, live, nil
}

// Close releases the live subscription. Closing twice, or closing an unopened
// session, is a no-op apart from the state change.
func (f *FeedSession) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Closed {
		return
	}
	f.state = Closed
	if f.live != nil {
		f.live.Close()
		f.live = nil
	}
}
