package client

import (
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/infrastructure/rest"
	"chat-feed/repositories"
	"chat-feed/runtime"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T) (*httptest.Server, *runtime.MessageStore) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	require.NoError(t, err)
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 280, 0, 0)
	server := httptest.NewServer(rest.NewServer(log, store, 10, 0, nil))
	t.Cleanup(func() {
		server.CloseClientConnections()
		server.Close()
		_ = store.Close()
	})
	return server, store
}

func TestHTTPTransport_Post_And_History(t *testing.T) {
	req := require.New(t)
	server, _ := newFeedServer(t)
	transport := NewHTTPTransport(server.URL+"/", nil)
	defer transport.Close()
	ctx := context.Background()

	record, err := transport.Post(ctx, domain.PostMessageCommand{SenderID: "u1", SenderDisplayName: "Alice", Text: "hi"})
	req.NoError(err)
	req.Equal(uint64(1), record.SequenceID)
	req.Equal("hi", record.Text)

	_, err = transport.Post(ctx, domain.PostMessageCommand{SenderID: "u1", Text: " "})
	req.ErrorIs(err, errors.ErrValidation)

	history, err := transport.History(ctx, 10)
	req.NoError(err)
	req.Len(history, 1)
	req.Equal("Alice", history[0].SenderDisplayName)
	req.Equal(record.CreatedAt.UnixNano(), history[0].CreatedAt.UnixNano())
}

func TestHTTPTransport_Subscribe(t *testing.T) {
	req := require.New(t)
	server, store := newFeedServer(t)
	transport := NewHTTPTransport(server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := store.Append(ctx, "u1", "Alice", "hi")
	req.NoError(err)

	// Given a session on the last record
	received := make(chan domain.MessageRecord, 10)
	done := make(chan error, 1)
	go func() {
		done <- transport.Subscribe(ctx, SubscribeRequest{Last: 1}, func(record domain.MessageRecord) error {
			received <- record
			return nil
		})
	}()
	req.Equal("hi", (<-received).Text)

	// When a new record is appended
	_, err = store.Append(ctx, "u2", "Bob", "yo")
	req.NoError(err)

	// Then it is received live
	select {
	case record := <-received:
		req.Equal(uint64(2), record.SequenceID)
	case <-time.After(2 * time.Second):
		req.FailNow("no live record")
	}

	// And cancelling ends the subscription without error
	cancel()
	req.NoError(<-done)
}

func TestHTTPTransport_Subscribe_Server_Shutdown(t *testing.T) {
	req := require.New(t)
	server, store := newFeedServer(t)
	transport := NewHTTPTransport(server.URL, nil)

	done := make(chan error, 1)
	go func() {
		done <- transport.Subscribe(context.Background(), SubscribeRequest{From: domain.Now}, func(domain.MessageRecord) error {
			return nil
		})
	}()
	req.Eventually(func() bool { return store.ActiveSubscriptions() == 1 }, time.Second, 10*time.Millisecond)

	req.NoError(store.Close())

	select {
	case err := <-done:
		req.ErrorIs(err, errors.ErrSubscriptionClosed)
	case <-time.After(2 * time.Second):
		req.FailNow("subscription did not end")
	}
}

func TestReadEvents(t *testing.T) {
	req := require.New(t)
	body := strings.Join([]string{
		": ping",
		"",
		"id: 1",
		"event: message",
		"data: {\"a\":",
		"data: 1}",
		"",
		"event: error",
		"data: boom",
		"",
		"",
	}, "\n")

	type event struct{ name, data string }
	var events []event
	err := readEvents(strings.NewReader(body), func(name, data string) error {
		events = append(events, event{name, data})
		return nil
	})

	req.NoError(err)
	req.Equal([]event{{"message", "{\"a\":\n1}"}, {"error", "boom"}}, events)
}

func TestReadEvents_Drops_Unterminated_Event(t *testing.T) {
	req := require.New(t)
	// Given a stream cut before the blank line closing its last event
	body := "event: message\ndata: first\n\nevent: message\ndata: partial\n"

	var data []string
	err := readEvents(strings.NewReader(body), func(_, d string) error {
		data = append(data, d)
		return nil
	})

	// Then only the complete event is dispatched
	req.NoError(err)
	req.Equal([]string{"first"}, data)
}

func TestDecodeError(t *testing.T) {
	req := require.New(t)
	for code, sentinel := range map[int]error{
		http.StatusBadRequest:         errors.ErrValidation,
		http.StatusServiceUnavailable: errors.ErrStorageUnavailable,
		http.StatusConflict:           errors.ErrInvalidState,
	} {
		recorder := httptest.NewRecorder()
		recorder.WriteHeader(code)
		_, _ = recorder.WriteString(`{"error":"nope"}`)
		req.ErrorIs(decodeError(recorder.Result()), sentinel)
	}
}
