package client

import (
	"chat-feed/domain"
	"chat-feed/errors"
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const DefaultGapTimeout = 2 * time.Second

// Follower keeps a live subscription open across disconnects.
//
// Every reconnect resumes after the last record handed to the caller, and records go
// through a Resequencer, so the caller sees each record once and in order even when the
// server replays the tail of the stream.
type Follower struct {
	transport  Transport
	log        *slog.Logger
	gapTimeout time.Duration
	maxRetry   time.Duration
}

// NewFollower builds a follower. maxRetry bounds the total time spent reconnecting
// without receiving anything (0 retries forever).
func NewFollower(log *slog.Logger, transport Transport, gapTimeout, maxRetry time.Duration) *Follower {
	if gapTimeout <= 0 {
		gapTimeout = DefaultGapTimeout
	}
	return &Follower{transport: transport, log: log, gapTimeout: gapTimeout, maxRetry: maxRetry}
}

// Follow delivers records to handle until ctx is cancelled, handle fails, or the
// reconnection budget is exhausted. With last > 0 the first connection opens a session
// (history then live), later ones resume after the last delivered record.
func (f *Follower) Follow(ctx context.Context, from domain.Cursor, last int, handle func(domain.MessageRecord) error) error {
	reseq := NewResequencer(f.gapTimeout)
	if !from.IsNow() && last <= 0 {
		reseq.Anchor(from.Seq())
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = f.maxRetry

	var handleErr error
	operation := func() error {
		req := SubscribeRequest{From: from, Last: last}
		if reseq.Anchored() {
			req = SubscribeRequest{From: domain.After(reseq.Last())}
		}
		err := f.stream(ctx, req, reseq, func(record domain.MessageRecord) error {
			policy.Reset()
			if err := handle(record); err != nil {
				handleErr = err
				return err
			}
			return nil
		})
		switch {
		case ctx.Err() != nil:
			return nil
		case handleErr != nil, stderrors.Is(err, errors.ErrValidation):
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		f.log.Warn("Subscription lost, reconnecting", "error", err, "retry_in", wait, "cursor", reseq.Last())
	}
	err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// stream runs one subscription, resequencing records and expiring gaps while it runs.
func (f *Follower) stream(ctx context.Context, req SubscribeRequest, reseq *Resequencer, deliver func(domain.MessageRecord) error) error {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	incoming := make(chan domain.MessageRecord)
	result := make(chan error, 1)
	go func() {
		result <- f.transport.Subscribe(streamCtx, req, func(record domain.MessageRecord) error {
			select {
			case incoming <- record:
				return nil
			case <-streamCtx.Done():
				return streamCtx.Err()
			}
		})
	}()

	ticker := time.NewTicker(f.gapTimeout / 2)
	defer ticker.Stop()
	for {
		var ready []domain.MessageRecord
		select {
		case record := <-incoming:
			ready = reseq.Push(record)
		case <-ticker.C:
			ready = reseq.Expire()
			if len(ready) > 0 {
				f.log.Warn("Skipped a sequence gap", "resumed_at", ready[0].SequenceID)
			}
		case err := <-result:
			return err
		}
		for _, record := range ready {
			if err := deliver(record); err != nil {
				cancel()
				<-result
				return err
			}
		}
	}
}
