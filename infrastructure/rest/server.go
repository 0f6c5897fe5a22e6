// Package rest exposes the feed over HTTP: JSON for posting and reading history,
// Server-Sent Events for live delivery.
package rest

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/infrastructure/grpc/feedv1"
	"chat-feed/runtime"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"
)

const (
	lastEventIDHeader = "Last-Event-ID"

	// DefaultMaxBodyBytes bounds a POST body when no content length is configured.
	DefaultMaxBodyBytes = 1 << 20
	// A JSON string escapes a character in at most 6 bytes, the rest of the body
	// (field names, sender id, display name) fits the envelope.
	bytesPerChar  = 6
	envelopeBytes = 4096
)

// Stats reports what the health endpoint shows.
type Stats func() map[string]any

type Server struct {
	log         *slog.Logger
	store       contract.IMessageStore
	historySize int
	heartbeat   time.Duration
	stats       Stats
	maxBody     int64
	mux         *http.ServeMux
}

type Option func(*Server)

// WithMaxContentLength sizes the POST body limit for texts of at most n characters.
func WithMaxContentLength(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = int64(n)*bytesPerChar + envelopeBytes
		}
	}
}

// NewServer builds the HTTP API. historySize is the default of GET /messages?last=,
// heartbeat the interval of SSE keep-alive comments (0 disables them).
func NewServer(log *slog.Logger, store contract.IMessageStore, historySize int, heartbeat time.Duration, stats Stats,
	opts ...Option) *Server {
	s := &Server{
		log:         log,
		store:       store,
		historySize: historySize,
		heartbeat:   heartbeat,
		stats:       stats,
		maxBody:     DefaultMaxBodyBytes,
		mux:         http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("POST /messages", s.handlePost)
	s.mux.HandleFunc("GET /messages", s.handleGet)
	s.mux.HandleFunc("GET /messages/subscribe", s.handleSubscribe)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type postResponse struct {
	SequenceID uint64    `json:"sequenceId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var req feedv1.PostMessageRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)})
			return
		}
		writeError(w, fmt.Errorf("%w: malformed body: %v", errors.ErrValidation, err))
		return
	}
	record, err := s.store.Append(r.Context(), req.SenderID, req.SenderDisplayName, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, postResponse{SequenceID: record.SequenceID, CreatedAt: record.CreatedAt})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	last, err := s.lastParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := s.store.ReadLast(r.Context(), last)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(records, func(item domain.MessageRecord, _ int) feedv1.Message {
		return feedv1.FromRecord(item)
	}))
}

// handleSubscribe streams records as SSE events whose id is the sequence id.
// A Last-Event-ID header resumes after that id; otherwise "last" opens a session
// (history then live) and "from" subscribes after a cursor, "now" by default.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported"))
		return
	}
	ctx := r.Context()
	query := r.URL.Query()

	var (
		history []domain.MessageRecord
		live    contract.ISubscription
		err     error
	)
	switch {
	case r.Header.Get(lastEventIDHeader) != "" || query.Get("last") == "":
		raw := query.Get("from")
		if id := r.Header.Get(lastEventIDHeader); id != "" {
			raw = id
		}
		cursor, parseErr := domain.ParseCursor(raw)
		if parseErr != nil {
			writeError(w, parseErr)
			return
		}
		live, err = s.store.SubscribeFrom(ctx, cursor)
		if err == nil {
			defer live.Close()
		}
	default:
		last, parseErr := s.lastParam(r)
		if parseErr != nil {
			writeError(w, parseErr)
			return
		}
		session := runtime.NewFeedSession(s.store)
		defer session.Close()
		history, live, err = session.Open(ctx, last)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := sseSink{w: w, flusher: flusher}
	for _, record := range history {
		if err := sink.Send(record); err != nil {
			return
		}
	}

	var heartbeat <-chan time.Time
	if s.heartbeat > 0 {
		ticker := time.NewTicker(s.heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}
	for {
		select {
		case record, ok := <-live.C():
			if !ok {
				if ctx.Err() == nil && live.Err() != nil {
					_ = sink.SendError(live.Err())
				}
				return
			}
			if err := sink.Send(record); err != nil {
				s.log.Debug("SSE client gone", "subscription_id", live.ID(), "error", err)
				return
			}
		case <-heartbeat:
			if err := sink.Ping(); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.stats != nil {
		for k, v := range s.stats() {
			body[k] = v
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) lastParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("last")
	if raw == "" {
		return s.historySize, nil
	}
	last, err := strconv.Atoi(raw)
	if err != nil || last <= 0 {
		return 0, fmt.Errorf("%w: last must be a positive integer, got %q", errors.ErrValidation, raw)
	}
	return last, nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{Error: err.Error()})
}
