package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/mocks"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestFeedSession_Delivers_Post_Open_Append_Once(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	ctx := context.Background()
	for i := 1; i <= 12; i++ {
		_, err := store.Append(ctx, "u1", "Trillian", fmt.Sprintf("m%d", i))
		req.NoError(err)
	}

	// Given an opened session on the last ten
	session := NewFeedSession(store)
	history, live, err := session.Open(ctx, 10)
	req.NoError(err)
	req.Len(history, 10)
	req.Equal(uint64(3), history[0].SequenceID)
	req.Equal(uint64(12), domain.Tail(history))
	req.Equal(Opened, session.State())

	// When a message is appended
	record, err := store.Append(ctx, "u2", "Arthur", "new")
	req.NoError(err)

	// Then it is delivered once on the live stream and is not in the history
	req.Equal(record, receive(t, live))
	requireSilent(t, live)
	req.NotContains(history, record)

	// When the session closes
	session.Close()
	req.Equal(Closed, session.State())

	// Then the live stream is over
	_, ok := <-live.C()
	req.False(ok)
}

// appendAfterSnapshot commits one record right after the first history read, before the
// session gets to register its subscription.
type appendAfterSnapshot struct {
	*memLog
	once     sync.Once
	appended domain.MessageRecord
}

func (a *appendAfterSnapshot) ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error) {
	records, err := a.memLog.ReadLast(ctx, n)
	if err != nil {
		return nil, err
	}
	a.once.Do(func() {
		a.appended, err = a.memLog.Append(ctx, domain.PostMessageCommand{SenderID: "u9", Text: "in between"}, time.Now())
	})
	return records, err
}

func TestFeedSession_Append_Between_Snapshot_And_Subscribe_Is_Delivered_Once(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	backend := &appendAfterSnapshot{memLog: &memLog{}}
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, err := backend.memLog.Append(ctx, domain.PostMessageCommand{SenderID: "u1", Text: fmt.Sprintf("m%d", i)}, time.Now())
		req.NoError(err)
	}
	store := newTestStore(t, backend)

	// Given a record committed after the history read returned
	session := NewFeedSession(store)
	defer session.Close()
	history, live, err := session.Open(ctx, 3)
	req.NoError(err)

	// Then the history stops before it
	req.Equal(uint64(6), backend.appended.SequenceID)
	req.Len(history, 3)
	req.Equal(uint64(5), domain.Tail(history))
	req.NotContains(history, backend.appended)

	// And it is delivered live exactly once
	req.Equal(backend.appended, receive(t, live))
	requireSilent(t, live)
}

func TestFeedSession_Concurrent_Opens_See_A_Contiguous_Feed(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	ctx := context.Background()
	const (
		sessions = 20
		appends  = 100
	)

	// Given a writer appending while sessions open
	writerDone := make(chan error, 1)
	go func() {
		for i := 0; i < appends; i++ {
			if _, err := store.Append(ctx, "u1", "Ford", fmt.Sprintf("m%d", i)); err != nil {
				writerDone <- err
				return
			}
		}
		writerDone <- nil
	}()

	var wg sync.WaitGroup
	failures := make(chan string, sessions)
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := NewFeedSession(store)
			defer session.Close()
			history, live, err := session.Open(ctx, 3)
			if err != nil {
				failures <- err.Error()
				return
			}
			// Then history followed by live records runs without gap up to the last append
			next := uint64(1)
			if len(history) > 0 {
				next = history[0].SequenceID
			}
			for _, record := range history {
				if record.SequenceID != next {
					failures <- fmt.Sprintf("history gap at %d", next)
					return
				}
				next++
			}
			timeout := time.After(5 * time.Second)
			for next <= appends {
				select {
				case record := <-live.C():
					if record.SequenceID != next {
						failures <- fmt.Sprintf("expected %d, got %d", next, record.SequenceID)
						return
					}
					next++
				case <-timeout:
					failures <- fmt.Sprintf("stuck at %d", next)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(failures)

	req.NoError(<-writerDone)
	for failure := range failures {
		req.Fail(failure)
	}
}

func TestFeedSession_Empty_History_Starts_At_Beginning(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	ctx := context.Background()

	// Given a session opened on an empty log
	session := NewFeedSession(store)
	defer session.Close()
	history, live, err := session.Open(ctx, 10)
	req.NoError(err)
	req.Empty(history)

	// When the first message arrives
	_, err = store.Append(ctx, "u1", "", "first")
	req.NoError(err)

	// Then it is delivered with sequence id 1
	req.Equal(uint64(1), receive(t, live).SequenceID)
}

func TestFeedSession_Open_Twice_Is_Invalid(t *testing.T) {
	defer goleak.VerifyNone(t)
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	session := NewFeedSession(store)
	defer session.Close()

	_, _, err := session.Open(context.Background(), 10)
	req.NoError(err)

	_, _, err = session.Open(context.Background(), 10)
	req.ErrorIs(err, errors.ErrInvalidState)
	req.Equal(1, store.ActiveSubscriptions())
}

func TestFeedSession_Open_After_Close_Is_Invalid(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	session := NewFeedSession(store)

	// Given a session closed before being opened
	session.Close()
	session.Close()

	// Then it can no longer be opened
	_, _, err := session.Open(context.Background(), 10)
	req.ErrorIs(err, errors.ErrInvalidState)
	req.Equal(Closed, session.State())
}

func TestFeedSession_Failed_Open_Can_Be_Retried(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIMessageStore(ctrl)
	sub := mocks.NewMockISubscription(ctrl)
	history := []domain.MessageRecord{{SequenceID: 4, SenderID: "u1", Text: "hi"}}

	// Given a store failing the first history read
	gomock.InOrder(
		store.EXPECT().ReadLast(gomock.Any(), 5).
			Return(nil, errors.Unavailable("read last", fmt.Errorf("timeout"))),
		store.EXPECT().ReadLast(gomock.Any(), 5).Return(history, nil),
		store.EXPECT().SubscribeFrom(gomock.Any(), domain.After(4)).Return(sub, nil),
	)
	sub.EXPECT().Close()

	session := NewFeedSession(store)

	// When the first open fails
	_, _, err := session.Open(context.Background(), 5)
	req.ErrorIs(err, errors.ErrStorageUnavailable)
	req.Equal(Unopened, session.State())

	// Then a second open succeeds and subscribes right after the history tail
	got, live, err := session.Open(context.Background(), 5)
	req.NoError(err)
	req.Equal(history, got)
	req.Equal(contract.ISubscription(sub), live)

	session.Close()
}

func TestFeedSession_Open_Rejects_Non_Positive_N(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t, &memLog{})
	session := NewFeedSession(store)

	_, _, err := session.Open(context.Background(), 0)
	req.ErrorIs(err, errors.ErrValidation)
	req.Equal(Unopened, session.State())
}
