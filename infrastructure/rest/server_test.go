package rest

import (
	"bufio"
	"chat-feed/errors"
	"chat-feed/infrastructure/grpc/feedv1"
	"chat-feed/mocks"
	"chat-feed/repositories"
	"chat-feed/runtime"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*httptest.Server, *runtime.MessageStore) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	require.NoError(t, err)
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 280, 0, 0)
	server := httptest.NewServer(NewServer(log, store, 10, 0, func() map[string]any {
		return map[string]any{"subscriptions": store.ActiveSubscriptions()}
	}))
	t.Cleanup(func() {
		server.Close()
		_ = store.Close()
	})
	return server, store
}

func post(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/messages", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

type sseEvent struct {
	id    string
	event string
	data  string
}

// nextEvent reads one event, skipping comments.
func nextEvent(t *testing.T, reader *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.event != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "id: "):
			ev.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			ev.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func subscribe(t *testing.T, ctx context.Context, url string, header http.Header) *bufio.Reader {
	t.Helper()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		request.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func TestServer_Post_Then_Get(t *testing.T) {
	req := require.New(t)
	server, _ := newTestServer(t)

	// When Alice and Bob post
	resp := post(t, server, `{"senderId":"u1","senderDisplayName":"Alice","text":"hi"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)
	var created feedv1.PostMessageResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&created))
	req.Equal(uint64(1), created.SequenceID)
	req.False(created.CreatedAt.IsZero())

	resp = post(t, server, `{"senderId":"u2","senderDisplayName":"Bob","text":"yo"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)

	// Then the history returns both, oldest first
	get, err := http.Get(server.URL + "/messages?last=10")
	req.NoError(err)
	defer get.Body.Close()
	req.Equal(http.StatusOK, get.StatusCode)
	var messages []feedv1.Message
	req.NoError(json.NewDecoder(get.Body).Decode(&messages))
	req.Len(messages, 2)
	req.Equal("hi", messages[0].Text)
	req.Equal("Alice", messages[0].SenderDisplayName)
	req.Equal("yo", messages[1].Text)
}

func TestServer_Post_Validation(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)

	for _, body := range []string{
		`{"senderId":"u1","text":"   "}`,
		`{"senderId":"","text":"hi"}`,
		`not json`,
	} {
		resp := post(t, server, body)
		req.Equal(http.StatusBadRequest, resp.StatusCode, body)
		var e errorResponse
		req.NoError(json.NewDecoder(resp.Body).Decode(&e))
		req.NotEmpty(e.Error)
	}

	tail, err := store.Tail(context.Background())
	req.NoError(err)
	req.Zero(tail)
}

func TestServer_Post_Rejects_Oversized_Body(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	req.NoError(err)
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 10, 0, 0)
	defer store.Close()
	server := httptest.NewServer(NewServer(log, store, 10, 0, nil, WithMaxContentLength(10)))
	defer server.Close()

	// When the body is far larger than any valid message
	resp := post(t, server, fmt.Sprintf(`{"senderId":"u1","text":%q}`, strings.Repeat("a", 10_000)))

	// Then it is refused before reaching the store
	req.Equal(http.StatusRequestEntityTooLarge, resp.StatusCode)
	records, err := store.ReadLast(context.Background(), 10)
	req.NoError(err)
	req.Empty(records)

	// And a slightly long text is still answered by validation
	resp = post(t, server, `{"senderId":"u1","text":"eleven char"}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Get_Rejects_Bad_Last(t *testing.T) {
	req := require.New(t)
	server, _ := newTestServer(t)

	for _, last := range []string{"0", "-2", "ten"} {
		resp, err := http.Get(server.URL + "/messages?last=" + last)
		req.NoError(err)
		_ = resp.Body.Close()
		req.Equal(http.StatusBadRequest, resp.StatusCode)
	}
}

func TestServer_Get_Defaults_To_History_Size(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)
	for i := 0; i < 15; i++ {
		_, err := store.Append(context.Background(), "u1", "", fmt.Sprintf("m%d", i))
		req.NoError(err)
	}

	resp, err := http.Get(server.URL + "/messages")
	req.NoError(err)
	defer resp.Body.Close()
	var messages []feedv1.Message
	req.NoError(json.NewDecoder(resp.Body).Decode(&messages))
	req.Len(messages, 10)
	req.Equal("m5", messages[0].Text)
}

func TestServer_Storage_Unavailable(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIMessageStore(ctrl)
	store.EXPECT().ReadLast(gomock.Any(), 10).
		Return(nil, errors.Unavailable("read last", fmt.Errorf("disk gone")))
	server := httptest.NewServer(NewServer(slog.Default(), store, 10, 0, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/messages")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_Subscribe_Streams_Live_Records(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given a subscriber on the tail
	reader := subscribe(t, ctx, server.URL+"/messages/subscribe?from=now", nil)
	req.Eventually(func() bool { return store.ActiveSubscriptions() == 1 }, time.Second, 10*time.Millisecond)

	// When a message is posted
	post(t, server, `{"senderId":"u1","senderDisplayName":"Alice","text":"hi"}`)

	// Then it is streamed as a message event
	ev := nextEvent(t, reader)
	req.Equal("message", ev.event)
	req.Equal("1", ev.id)
	var message feedv1.Message
	req.NoError(json.Unmarshal([]byte(ev.data), &message))
	req.Equal("hi", message.Text)
	req.Equal("u1", message.SenderID)

	// When the client goes away
	cancel()

	// Then the subscription is released
	req.Eventually(func() bool { return store.ActiveSubscriptions() == 0 }, time.Second, 10*time.Millisecond)
}

func TestServer_Subscribe_Last_Streams_History_Then_Live(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, text := range []string{"a", "b", "c"} {
		_, err := store.Append(context.Background(), "u1", "", text)
		req.NoError(err)
	}

	// Given a session on the last two
	reader := subscribe(t, ctx, server.URL+"/messages/subscribe?last=2", nil)

	// Then history comes first
	req.Equal("2", nextEvent(t, reader).id)
	req.Equal("3", nextEvent(t, reader).id)

	// And live records follow
	_, err := store.Append(context.Background(), "u2", "", "d")
	req.NoError(err)
	req.Equal("4", nextEvent(t, reader).id)
}

func TestServer_Subscribe_Resumes_From_Last_Event_ID(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, text := range []string{"a", "b", "c"} {
		_, err := store.Append(context.Background(), "u1", "", text)
		req.NoError(err)
	}

	// When reconnecting with the last seen id, which wins over "from"
	reader := subscribe(t, ctx, server.URL+"/messages/subscribe?from=now",
		http.Header{lastEventIDHeader: []string{"1"}})

	// Then the stream resumes right after it
	req.Equal("2", nextEvent(t, reader).id)
	req.Equal("3", nextEvent(t, reader).id)
}

func TestServer_Subscribe_Rejects_Bad_Cursor(t *testing.T) {
	req := require.New(t)
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/messages/subscribe?from=yesterday")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Subscribe_Ends_With_Error_Event_On_Shutdown(t *testing.T) {
	req := require.New(t)
	server, store := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := subscribe(t, ctx, server.URL+"/messages/subscribe", nil)
	req.Eventually(func() bool { return store.ActiveSubscriptions() == 1 }, time.Second, 10*time.Millisecond)

	// When the store closes
	req.NoError(store.Close())

	// Then a terminal error event is sent
	ev := nextEvent(t, reader)
	req.Equal("error", ev.event)
	req.Contains(ev.data, "subscription closed")
}

func TestServer_Health(t *testing.T) {
	req := require.New(t)
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	var body map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal("ok", body["status"])
	req.EqualValues(0, body["subscriptions"])
}

func TestServer_Unknown_Route(t *testing.T) {
	server, _ := newTestServer(t)
	resp, err := http.Post(server.URL+"/healthz", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
