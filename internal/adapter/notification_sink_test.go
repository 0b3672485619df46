package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "warden.dev/pkg/warden/internal/model"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var messages []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var msg map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		messages = append(messages, msg)
	}

	return messages
}

func TestStreamSink_PublishDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)

	err := sink.PublishDiagnostics(context.Background(), m.PublishDiagnosticsParams{URI: "file:///project/a.rb"})
	require.NoError(t, err)

	messages := decodeLines(t, &buf)
	require.Len(t, messages, 1)
	assert.Equal(t, "2.0", messages[0]["jsonrpc"])
	assert.Equal(t, MethodPublishDiagnostics, messages[0]["method"])
	assert.NotContains(t, messages[0], "id")

	params := messages[0]["params"].(map[string]any)
	assert.Equal(t, "file:///project/a.rb", params["uri"])
	assert.Equal(t, []any{}, params["diagnostics"], "a clear must be an empty list, not null")
}

func TestStreamSink_LogMessage(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)

	require.NoError(t, sink.LogMessage(context.Background(), m.LogMessageParams{Type: m.MessageLog, Message: "[Warden] hi"}))

	messages := decodeLines(t, &buf)
	require.Len(t, messages, 1)
	assert.Equal(t, MethodLogMessage, messages[0]["method"])

	params := messages[0]["params"].(map[string]any)
	assert.Equal(t, float64(m.MessageLog), params["type"])
	assert.Equal(t, "[Warden] hi", params["message"])
}

func TestStreamSink_RegisterWatchers(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)

	watchers := []m.FileSystemWatcher{{GlobPattern: "**/Gemfile", Kind: m.WatchCreate | m.WatchChange | m.WatchDelete}}
	require.NoError(t, sink.RegisterWatchers(context.Background(), watchers))

	messages := decodeLines(t, &buf)
	require.Len(t, messages, 1)
	assert.Equal(t, MethodRegisterCapability, messages[0]["method"])
	assert.NotEmpty(t, messages[0]["id"])

	registrations := messages[0]["params"].(map[string]any)["registrations"].([]any)
	require.Len(t, registrations, 1)

	reg := registrations[0].(map[string]any)
	assert.Equal(t, MethodDidChangeWatched, reg["method"])

	registered := reg["registerOptions"].(map[string]any)["watchers"].([]any)
	require.Len(t, registered, 1)
	assert.Equal(t, "**/Gemfile", registered[0].(map[string]any)["globPattern"])
	assert.Equal(t, float64(7), registered[0].(map[string]any)["kind"])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestStreamSink_Errors(t *testing.T) {
	sink := NewStreamSink(failingWriter{})

	err := sink.LogMessage(context.Background(), m.LogMessageParams{Type: m.MessageLog, Message: "x"})

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, MethodLogMessage, transportErr.Method)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = NewStreamSink(&bytes.Buffer{}).PublishDiagnostics(ctx, m.PublishDiagnosticsParams{URI: "file:///a"})
	assert.ErrorIs(t, err, context.Canceled)
}
