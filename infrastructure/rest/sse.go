package rest

import (
	"chat-feed/domain"
	"chat-feed/infrastructure/grpc/feedv1"
	"encoding/json"
	"fmt"
	"net/http"
)

// sseSink writes feed records as Server-Sent Events.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// Send writes one "message" event carrying the record, its sequence id as event id.
func (s sseSink) Send(record domain.MessageRecord) error {
	b, err := json.Marshal(feedv1.FromRecord(record))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: message\ndata: %s\n\n", record.SequenceID, b); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SendError writes the terminal "error" event of the stream.
func (s sseSink) SendError(cause error) error {
	b, _ := json.Marshal(errorResponse{Error: cause.Error()})
	if _, err := fmt.Fprintf(s.w, "event: error\ndata: %s\n\n", b); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s sseSink) Ping() error {
	if _, err := fmt.Fprint(s.w, ": ping\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
