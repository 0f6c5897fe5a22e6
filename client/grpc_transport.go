package client

import (
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/infrastructure/grpc/feedv1"
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var _ Transport = (*GRPCTransport)(nil)

type GRPCTransport struct {
	conn   *grpc.ClientConn
	client feedv1.FeedClient
}

// DialGRPC connects to address without transport security, extra options are appended.
func DialGRPC(address string, opts ...grpc.DialOption) (*GRPCTransport, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to server at %s: %w", address, err)
	}
	return &GRPCTransport{conn: conn, client: feedv1.NewFeedClient(conn)}, nil
}

func (t *GRPCTransport) Post(ctx context.Context, cmd domain.PostMessageCommand) (domain.MessageRecord, error) {
	resp, err := t.client.PostMessage(ctx, &feedv1.PostMessageRequest{
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
	})
	if err != nil {
		return domain.MessageRecord{}, errors.FromGRPCError(err)
	}
	return domain.MessageRecord{
		SequenceID:        resp.SequenceID,
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
		CreatedAt:         resp.CreatedAt.UTC(),
	}, nil
}

func (t *GRPCTransport) History(ctx context.Context, last int) ([]domain.MessageRecord, error) {
	resp, err := t.client.GetMessages(ctx, &feedv1.GetMessagesRequest{Last: last})
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return lo.Map(resp.Messages, func(item feedv1.Message, _ int) domain.MessageRecord {
		return item.ToRecord()
	}), nil
}

func (t *GRPCTransport) Subscribe(ctx context.Context, sub SubscribeRequest, onMessage func(domain.MessageRecord) error) error {
	req := &feedv1.SubscribeRequest{Last: sub.Last}
	if sub.Last <= 0 {
		req.From = sub.From.String()
	}
	stream, err := t.client.Subscribe(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.FromGRPCError(err)
	}
	for {
		message, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if err == io.EOF {
				return errors.Unavailable("subscribe", io.ErrUnexpectedEOF)
			}
			return errors.FromGRPCError(err)
		}
		if err := onMessage(message.ToRecord()); err != nil {
			return err
		}
	}
}

func (t *GRPCTransport) Close() error {
	return t.conn.Close()
}
