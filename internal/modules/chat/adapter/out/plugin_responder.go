package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	responderrpc "fathom/internal/modules/chat/adapter/out/rpc"
	"fathom/internal/modules/chat/domain"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginResponder delegates replies to an external binary speaking the responder contract.
// The plugin process is started on first use and reused until Close.
type PluginResponder struct {
	binary string
	logger hclog.Logger

	mu     sync.Mutex
	client *plugin.Client
	rpc    responderrpc.ResponderClient
}

func NewPluginResponder(binary string, logger hclog.Logger) *PluginResponder {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
	}
	return &PluginResponder{binary: binary, logger: logger}
}

func (r *PluginResponder) Reply(ctx context.Context, text string) (string, error) {
	client, err := r.connect()
	if err != nil {
		return "", err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Reply(callCtx, &responderrpc.ReplyRequest{Text: text, Category: string(domain.Classify(text))})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("responder plugin timed out: %w", err)
		}
		r.reset()
		return "", fmt.Errorf("responder reply: %w", err)
	}
	return response.Text, nil
}

// Metadata reports the plugin's name and version, starting it when needed.
func (r *PluginResponder) Metadata(ctx context.Context) (responderrpc.Metadata, error) {
	client, err := r.connect()
	if err != nil {
		return responderrpc.Metadata{}, err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return responderrpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (r *PluginResponder) Close() {
	r.reset()
}

func (r *PluginResponder) connect() (responderrpc.ResponderClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rpc != nil && r.client != nil && !r.client.Exited() {
		return r.rpc, nil
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  responderrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          responderrpc.PluginMap(nil),
		Cmd:              exec.Command(r.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           r.logger,
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start responder plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(responderrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense responder plugin: %w", err)
	}
	typed, ok := raw.(responderrpc.ResponderClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("responder rpc client type mismatch")
	}
	r.client = client
	r.rpc = typed
	return typed, nil
}

func (r *PluginResponder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		r.client.Kill()
	}
	r.client = nil
	r.rpc = nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
