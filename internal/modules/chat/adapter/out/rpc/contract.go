// Package rpc is the wire contract between fathom and an out-of-process responder plugin.
// Messages travel over gRPC with a JSON codec, so no generated protobuf code is needed.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "responder"
	serviceName       = "fathom.responder.v1.Responder"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodReply       = "/" + serviceName + "/Reply"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FATHOM_RESPONDER_PLUGIN",
	MagicCookieValue: "fathom",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ReplyRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type ReplyResponse struct {
	Text string `json:"text"`
}

type ResponderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Reply(ctx context.Context, in *ReplyRequest) (*ReplyResponse, error)
}

type ResponderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Reply(ctx context.Context, in *ReplyRequest) (*ReplyResponse, error)
}

type responderClient struct {
	conn *grpc.ClientConn
}

func NewResponderClient(conn *grpc.ClientConn) ResponderClient {
	return &responderClient{conn: conn}
}

func (c *responderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *responderClient) Reply(ctx context.Context, in *ReplyRequest) (*ReplyResponse, error) {
	out := &ReplyResponse{}
	if err := c.conn.Invoke(ctx, methodReply, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterResponderServer(server grpc.ServiceRegistrar, impl ResponderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ResponderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Reply",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ReplyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Reply(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReply}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ReplyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Reply(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "fathom/responder-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ResponderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterResponderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewResponderClient(conn), nil
}

func PluginMap(impl ResponderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
