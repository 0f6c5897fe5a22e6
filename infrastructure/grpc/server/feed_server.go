package server

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	pb "chat-feed/infrastructure/grpc/feedv1"
	"chat-feed/runtime"
	"context"
	"log/slog"

	"github.com/samber/lo"
)

var _ pb.FeedServer = (*FeedServer)(nil)

type FeedServer struct {
	store       contract.IMessageStore
	historySize int
	log         *slog.Logger
}

func NewFeedServer(log *slog.Logger, store contract.IMessageStore, historySize int) *FeedServer {
	return &FeedServer{store: store, historySize: historySize, log: log}
}

// PostMessage appends the message and answers with its sequence id.
// The sender receives its own message through Subscribe like any other participant.
func (s *FeedServer) PostMessage(ctx context.Context, req *pb.PostMessageRequest) (*pb.PostMessageResponse, error) {
	record, err := s.store.Append(ctx, req.SenderID, req.SenderDisplayName, req.Text)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.PostMessageResponse{SequenceID: record.SequenceID, CreatedAt: record.CreatedAt}, nil
}

func (s *FeedServer) GetMessages(ctx context.Context, req *pb.GetMessagesRequest) (*pb.GetMessagesResponse, error) {
	last := req.Last
	if last == 0 {
		last = s.historySize
	}
	records, err := s.store.ReadLast(ctx, last)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetMessagesResponse{Messages: toMessages(records)}, nil
}

// Subscribe streams records until the client goes away or the subscription fails.
// With Last > 0 it opens a session and streams its history first.
func (s *FeedServer) Subscribe(req *pb.SubscribeRequest, stream pb.Feed_SubscribeServer) error {
	ctx := stream.Context()
	var (
		history []domain.MessageRecord
		live    contract.ISubscription
	)
	if req.Last > 0 {
		session := runtime.NewFeedSession(s.store)
		defer session.Close()
		var err error
		if history, live, err = session.Open(ctx, req.Last); err != nil {
			return errors.MapToGRPCError(err)
		}
	} else {
		cursor, err := domain.ParseCursor(req.From)
		if err != nil {
			return errors.MapToGRPCError(err)
		}
		if live, err = s.store.SubscribeFrom(ctx, cursor); err != nil {
			return errors.MapToGRPCError(err)
		}
		defer live.Close()
	}

	for _, record := range history {
		if err := stream.Send(lo.ToPtr(pb.FromRecord(record))); err != nil {
			return err
		}
	}
	for record := range live.C() {
		if err := stream.Send(lo.ToPtr(pb.FromRecord(record))); err != nil {
			s.log.Error("failed to push record to stream",
				"subscription_id", live.ID(),
				"sequence_id", record.SequenceID,
				"error", err)
			return err
		}
	}
	if ctx.Err() != nil {
		s.log.Debug("Client disconnected", "subscription_id", live.ID(), "cursor", live.Cursor())
		return nil
	}
	return errors.MapToGRPCError(live.Err())
}

func toMessages(records []domain.MessageRecord) []pb.Message {
	return lo.Map(records, func(item domain.MessageRecord, _ int) pb.Message {
		return pb.FromRecord(item)
	})
}
