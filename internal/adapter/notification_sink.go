package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	m "warden.dev/pkg/warden/internal/model"
)

// Editor protocol method names.
const (
	MethodPublishDiagnostics = "textDocument/publishDiagnostics"
	MethodLogMessage         = "window/logMessage"
	MethodRegisterCapability = "client/registerCapability"
	MethodDidChangeWatched   = "workspace/didChangeWatchedFiles"

	jsonRPCVersion = "2.0"
)

// NotificationSink delivers diagnostics and log notices to the editor.
type NotificationSink interface {
	PublishDiagnostics(ctx context.Context, params m.PublishDiagnosticsParams) error
	LogMessage(ctx context.Context, params m.LogMessageParams) error
}

// WatchRegistrar asks the client to report changes to files matching the given watchers.
type WatchRegistrar interface {
	RegisterWatchers(ctx context.Context, watchers []m.FileSystemWatcher) error
}

type rpcMessage struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type registration struct {
	ID              string               `json:"id"`
	Method          string               `json:"method"`
	RegisterOptions watchRegisterOptions `json:"registerOptions"`
}

type watchRegisterOptions struct {
	Watchers []m.FileSystemWatcher `json:"watchers"`
}

type registrationParams struct {
	Registrations []registration `json:"registrations"`
}

// StreamSink writes JSON-RPC 2.0 messages to a stream, one per line.
type StreamSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var (
	_ NotificationSink = (*StreamSink)(nil)
	_ WatchRegistrar   = (*StreamSink)(nil)
)

// NewStreamSink creates a StreamSink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{enc: json.NewEncoder(w)}
}

// PublishDiagnostics implements NotificationSink.
func (s *StreamSink) PublishDiagnostics(ctx context.Context, params m.PublishDiagnosticsParams) error {
	if params.Diagnostics == nil {
		params.Diagnostics = []m.Diagnostic{}
	}

	return s.write(ctx, rpcMessage{Method: MethodPublishDiagnostics, Params: params})
}

// LogMessage implements NotificationSink.
func (s *StreamSink) LogMessage(ctx context.Context, params m.LogMessageParams) error {
	return s.write(ctx, rpcMessage{Method: MethodLogMessage, Params: params})
}

// RegisterWatchers implements WatchRegistrar by sending a registerCapability request.
func (s *StreamSink) RegisterWatchers(ctx context.Context, watchers []m.FileSystemWatcher) error {
	params := registrationParams{
		Registrations: []registration{{
			ID:              uuid.NewString(),
			Method:          MethodDidChangeWatched,
			RegisterOptions: watchRegisterOptions{Watchers: watchers},
		}},
	}

	return s.write(ctx, rpcMessage{ID: uuid.NewString(), Method: MethodRegisterCapability, Params: params})
}

func (s *StreamSink) write(ctx context.Context, msg rpcMessage) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Method: msg.Method, Err: err}
	}

	msg.JSONRPC = jsonRPCVersion

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(msg); err != nil {
		return &TransportError{Method: msg.Method, Err: fmt.Errorf("encode: %w", err)}
	}

	return nil
}
