package feedv1

import (
	"context"

	"google.golang.org/grpc"
)

type FeedServer interface {
	PostMessage(ctx context.Context, req *PostMessageRequest) (*PostMessageResponse, error)
	GetMessages(ctx context.Context, req *GetMessagesRequest) (*GetMessagesResponse, error)
	Subscribe(req *SubscribeRequest, stream Feed_SubscribeServer) error
}

type Feed_SubscribeServer interface {
	Send(*Message) error
	grpc.ServerStream
}

type feedSubscribeServer struct {
	grpc.ServerStream
}

func (x *feedSubscribeServer) Send(m *Message) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterFeedServer(s grpc.ServiceRegistrar, srv FeedServer) {
	s.RegisterService(&Feed_ServiceDesc, srv)
}

func postMessageHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PostMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServer).PostMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/PostMessage"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedServer).PostMessage(ctx, req.(*PostMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getMessagesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMessagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServer).GetMessages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetMessages"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedServer).GetMessages(ctx, req.(*GetMessagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	in := new(SubscribeRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(FeedServer).Subscribe(in, &feedSubscribeServer{stream})
}

var Feed_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PostMessage", Handler: postMessageHandler},
		{MethodName: "GetMessages", Handler: getMessagesHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: subscribeHandler, ServerStreams: true},
	},
	Metadata: "feed.proto",
}

// FeedClient is the client stub of the service.
type FeedClient interface {
	PostMessage(ctx context.Context, in *PostMessageRequest, opts ...grpc.CallOption) (*PostMessageResponse, error)
	GetMessages(ctx context.Context, in *GetMessagesRequest, opts ...grpc.CallOption) (*GetMessagesResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Feed_SubscribeClient, error)
}

type Feed_SubscribeClient interface {
	Recv() (*Message, error)
	grpc.ClientStream
}

type feedClient struct {
	cc grpc.ClientConnInterface
}

func NewFeedClient(cc grpc.ClientConnInterface) FeedClient {
	return &feedClient{cc: cc}
}

func (c *feedClient) PostMessage(ctx context.Context, in *PostMessageRequest, opts ...grpc.CallOption) (*PostMessageResponse, error) {
	out := new(PostMessageResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/PostMessage", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedClient) GetMessages(ctx context.Context, in *GetMessagesRequest, opts ...grpc.CallOption) (*GetMessagesResponse, error) {
	out := new(GetMessagesResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetMessages", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Feed_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &Feed_ServiceDesc.Streams[0], "/"+ServiceName+"/Subscribe", opts...)
	if err != nil {
		return nil, err
	}
	x := &feedSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type feedSubscribeClient struct {
	grpc.ClientStream
}

func (x *feedSubscribeClient) Recv() (*Message, error) {
	m := new(Message)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
