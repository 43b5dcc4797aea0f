package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-plugin"

	notifyrpc "pomo/internal/modules/notify/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.Event) (*notifyrpc.NotifyResponse, error) {
	var line string
	switch in.Kind {
	case "session_completed":
		line = fmt.Sprintf("pomodoro done: %d minutes", in.Minutes)
	case "session_canceled":
		line = fmt.Sprintf("pomodoro canceled after starting a %d minute session", in.Minutes)
	default:
		return nil, fmt.Errorf("unknown event kind: %s", in.Kind)
	}
	if in.Note != "" {
		line += " (" + in.Note + ")"
	}
	_, _ = fmt.Fprintln(os.Stderr, line)
	return &notifyrpc.NotifyResponse{Acknowledged: true, Message: line}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
