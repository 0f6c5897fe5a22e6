package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// memLog is an ILogBackend kept in a slice.
type memLog struct {
	mu      sync.Mutex
	records []domain.MessageRecord
	closed  bool
}

var _ contract.ILogBackend = (*memLog)(nil)

func (m *memLog) Append(_ context.Context, cmd domain.PostMessageCommand, at time.Time) (domain.MessageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record := domain.MessageRecord{
		SequenceID:        uint64(len(m.records) + 1),
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
		CreatedAt:         at.UTC(),
	}
	m.records = append(m.records, record)
	return record, nil
}

func (m *memLog) ReadLast(_ context.Context, n int) ([]domain.MessageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := max(len(m.records)-n, 0)
	return append([]domain.MessageRecord(nil), m.records[start:]...), nil
}

func (m *memLog) ReadAfter(_ context.Context, after uint64, limit int) ([]domain.MessageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.MessageRecord
	for _, r := range m.records {
		if r.SequenceID <= after {
			continue
		}
		if limit > 0 && len(res) == limit {
			break
		}
		res = append(res, r)
	}
	return res, nil
}

func (m *memLog) LastSequence(_ context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Tail(m.records), nil
}

func (m *memLog) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelError)
}

func newTestStore(t *testing.T, backend contract.ILogBackend) *MessageStore {
	t.Helper()
	store := NewMessageStore(testLogger(), backend, NewRegistry(), 280, 4, 0)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// receive waits for the next record on a subscription.
func receive(t *testing.T, sub contract.ISubscription) domain.MessageRecord {
	t.Helper()
	select {
	case record, ok := <-sub.C():
		require.True(t, ok, "subscription closed: %v", sub.Err())
		return record
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no record delivered")
		return domain.MessageRecord{}
	}
}

// requireSilent checks nothing is delivered within a short window.
func requireSilent(t *testing.T, sub contract.ISubscription) {
	t.Helper()
	select {
	case record, ok := <-sub.C():
		if ok {
			require.FailNow(t, "unexpected delivery", "record %d", record.SequenceID)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

// requireClosed waits for the subscription channel to be closed.
func requireClosed(t *testing.T, sub contract.ISubscription) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				return
			}
		case <-timeout:
			require.FailNow(t, "subscription still open")
		}
	}
}
