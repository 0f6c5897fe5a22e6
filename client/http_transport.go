package client

import (
	"bufio"
	"bytes"
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/infrastructure/grpc/feedv1"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport uses the REST API and its Server-Sent Events stream.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *HTTPTransport) Post(ctx context.Context, cmd domain.PostMessageCommand) (domain.MessageRecord, error) {
	body, err := json.Marshal(feedv1.PostMessageRequest{
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
	})
	if err != nil {
		return domain.MessageRecord{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return domain.MessageRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return domain.MessageRecord{}, errors.Unavailable("post", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return domain.MessageRecord{}, decodeError(resp)
	}
	var created feedv1.PostMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.MessageRecord{}, fmt.Errorf("decode response: %w", err)
	}
	return domain.MessageRecord{
		SequenceID:        created.SequenceID,
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
		CreatedAt:         created.CreatedAt.UTC(),
	}, nil
}

func (t *HTTPTransport) History(ctx context.Context, last int) ([]domain.MessageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		t.baseURL+"/messages?last="+strconv.Itoa(last), nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.Unavailable("history", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var messages []feedv1.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return lo.Map(messages, func(item feedv1.Message, _ int) domain.MessageRecord {
		return item.ToRecord()
	}), nil
}

func (t *HTTPTransport) Subscribe(ctx context.Context, sub SubscribeRequest, onMessage func(domain.MessageRecord) error) error {
	query := url.Values{}
	if sub.Last > 0 {
		query.Set("last", strconv.Itoa(sub.Last))
	} else {
		query.Set("from", sub.From.String())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/messages/subscribe?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Unavailable("subscribe", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	err = readEvents(resp.Body, func(event, data string) error {
		switch event {
		case "error":
			var body struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal([]byte(data), &body)
			return fmt.Errorf("%w: %s", errors.ErrSubscriptionClosed, body.Error)
		case "message", "":
			var message feedv1.Message
			if err := json.Unmarshal([]byte(data), &message); err != nil {
				return fmt.Errorf("decode event: %w", err)
			}
			return onMessage(message.ToRecord())
		default:
			return nil
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		return errors.Unavailable("subscribe", io.ErrUnexpectedEOF)
	}
	return err
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// readEvents parses a text/event-stream body, calling fn once per dispatched event.
func readEvents(body io.Reader, fn func(event, data string) error) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var (
		event string
		data  []string
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(data) > 0 {
				if err := fn(event, strings.Join(data, "\n")); err != nil {
					return err
				}
			}
			event, data = "", nil
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return scanner.Err()
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", errors.ErrValidation, body.Error)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", errors.ErrStorageUnavailable, body.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", errors.ErrInvalidState, body.Error)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.Error)
	}
}
