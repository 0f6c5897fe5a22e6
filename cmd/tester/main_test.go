package main

import (
	"chat-feed/client"
	"chat-feed/infrastructure/rest"
	"chat-feed/repositories"
	"chat-feed/runtime"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestRun_Delivers_Every_Message_Once_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	req.NoError(err)
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 280, 0, 0)
	server := httptest.NewServer(rest.NewServer(log, store, 10, 0, nil))
	defer func() {
		server.CloseClientConnections()
		server.Close()
		_ = store.Close()
	}()

	// Given a feed that already holds a message
	_, err = store.Append(context.Background(), "u0", "Zaphod", "before the run")
	req.NoError(err)
	transport := client.NewHTTPTransport(server.URL+"/", nil)
	defer transport.Close()

	// When several senders post concurrently
	r, err := run(context.Background(), transport, options{senders: 4, messages: 10, timeout: 10 * time.Second})

	// Then the subscriber saw exactly the posted messages, in order
	req.NoError(err)
	req.Equal(40, r.posted)
	req.Equal(40, r.received)
	req.Zero(r.duplicates)
	req.Zero(r.outOfOrder)
	req.Equal(uint64(2), r.firstSeq)
	req.Equal(uint64(41), r.lastSeq)
}

func TestRun_Fails_On_Rejected_Post(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	req.NoError(err)
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 5, 0, 0)
	server := httptest.NewServer(rest.NewServer(log, store, 10, 0, nil))
	defer func() {
		server.CloseClientConnections()
		server.Close()
		_ = store.Close()
	}()
	transport := client.NewHTTPTransport(server.URL+"/", nil)
	defer transport.Close()

	// When the texts exceed the maximum length of the feed
	_, err = run(context.Background(), transport, options{senders: 1, messages: 1, timeout: 5 * time.Second})

	// Then the run stops with the rejection
	req.Error(err)
	records, err := store.ReadLast(context.Background(), 10)
	req.NoError(err)
	req.Empty(records)
}
