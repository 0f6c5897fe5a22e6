package server

import (
	pb "chat-feed/infrastructure/grpc/feedv1"
	"chat-feed/repositories"
	"chat-feed/runtime"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1 << 20

type feedServerSuite struct {
	suite.Suite
	store  *runtime.MessageStore
	server *grpc.Server
	conn   *grpc.ClientConn
	client pb.FeedClient
}

func TestFeedServerSuite(t *testing.T) {
	suite.Run(t, &feedServerSuite{})
}

func (s *feedServerSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelError)
	backend, err := repositories.OpenBadgerLog("", log)
	s.Require().NoError(err)
	s.store = runtime.NewMessageStore(log, backend, runtime.NewRegistry(), 280, 0, 0)

	listener := bufconn.Listen(bufSize)
	s.server = grpc.NewServer()
	pb.RegisterFeedServer(s.server, NewFeedServer(log, s.store, 10))
	go func() { _ = s.server.Serve(listener) }()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.client = pb.NewFeedClient(s.conn)
}

func (s *feedServerSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	_ = s.store.Close()
}

func (s *feedServerSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}

func (s *feedServerSuite) post(senderID, name, text string) *pb.PostMessageResponse {
	resp, err := s.client.PostMessage(s.ctx(), &pb.PostMessageRequest{
		SenderID:          senderID,
		SenderDisplayName: name,
		Text:              text,
	})
	s.Require().NoError(err)
	return resp
}

func (s *feedServerSuite) TestPostAndGetMessages() {
	// Given two posts
	s.Equal(uint64(1), s.post("u1", "Alice", "hi").SequenceID)
	s.Equal(uint64(2), s.post("u2", "Bob", "yo").SequenceID)

	// When the history is read with the default size
	resp, err := s.client.GetMessages(s.ctx(), &pb.GetMessagesRequest{})
	s.Require().NoError(err)

	// Then both come back, oldest first
	s.Require().Len(resp.Messages, 2)
	s.Equal("hi", resp.Messages[0].Text)
	s.Equal("Alice", resp.Messages[0].SenderDisplayName)
	s.Equal("yo", resp.Messages[1].Text)
}

func (s *feedServerSuite) TestPostMessageValidation() {
	_, err := s.client.PostMessage(s.ctx(), &pb.PostMessageRequest{SenderID: "u1", Text: "  "})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.client.GetMessages(s.ctx(), &pb.GetMessagesRequest{Last: -1})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *feedServerSuite) TestSubscribeWithSession() {
	s.post("u1", "Alice", "hi")
	s.post("u2", "Bob", "yo")

	// Given a session opened on the last record
	stream, err := s.client.Subscribe(s.ctx(), &pb.SubscribeRequest{Last: 1})
	s.Require().NoError(err)

	// Then the history comes first
	message, err := stream.Recv()
	s.Require().NoError(err)
	s.Equal(uint64(2), message.SequenceID)

	// When Alice says bye
	s.post("u1", "Alice", "bye")

	// Then it is delivered live
	message, err = stream.Recv()
	s.Require().NoError(err)
	s.Equal(uint64(3), message.SequenceID)
	s.Equal("bye", message.Text)
}

func (s *feedServerSuite) TestSubscribeFromCursor() {
	s.post("u1", "Alice", "a")
	s.post("u1", "Alice", "b")

	stream, err := s.client.Subscribe(s.ctx(), &pb.SubscribeRequest{From: "1"})
	s.Require().NoError(err)

	message, err := stream.Recv()
	s.Require().NoError(err)
	s.Equal("b", message.Text)
}

func (s *feedServerSuite) TestSubscribeRejectsBadCursor() {
	stream, err := s.client.Subscribe(s.ctx(), &pb.SubscribeRequest{From: "later"})
	s.Require().NoError(err)

	_, err = stream.Recv()
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *feedServerSuite) TestSubscribeEndsWhenStoreCloses() {
	stream, err := s.client.Subscribe(s.ctx(), &pb.SubscribeRequest{From: "now"})
	s.Require().NoError(err)
	s.Eventually(func() bool { return s.store.ActiveSubscriptions() == 1 }, time.Second, 10*time.Millisecond)

	s.Require().NoError(s.store.Close())

	_, err = stream.Recv()
	s.Equal(codes.Aborted, status.Code(err))
}

func (s *feedServerSuite) TestClientCancelReleasesSubscription() {
	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.client.Subscribe(ctx, &pb.SubscribeRequest{From: "now"})
	s.Require().NoError(err)
	s.Eventually(func() bool { return s.store.ActiveSubscriptions() == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	s.Eventually(func() bool { return s.store.ActiveSubscriptions() == 0 }, time.Second, 10*time.Millisecond)
}
