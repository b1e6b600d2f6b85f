package main

import (
	"context"
	"strings"

	"github.com/hashicorp/go-plugin"

	responderrpc "fathom/internal/modules/chat/adapter/out/rpc"
	"fathom/internal/modules/chat/domain"
)

// server answers with the canned templates plus a gentle prompt to keep writing.
type server struct {
	canned *domain.CannedResponder
}

func (s *server) GetMetadata(_ context.Context, _ *responderrpc.Empty) (*responderrpc.Metadata, error) {
	return &responderrpc.Metadata{Name: "reference-responder", Version: "1.0.0"}, nil
}

func (s *server) Reply(_ context.Context, in *responderrpc.ReplyRequest) (*responderrpc.ReplyResponse, error) {
	category := domain.Category(in.Category)
	if strings.TrimSpace(in.Category) == "" {
		category = domain.Classify(in.Text)
	}
	return &responderrpc.ReplyResponse{Text: s.canned.Respond(category)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: responderrpc.HandshakeConfig,
		Plugins:         responderrpc.PluginMap(&server{canned: domain.NewCannedResponder(nil)}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
