package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	m "warden.dev/pkg/warden/internal/model"
)

const (
	// MethodExit ends a change stream.
	MethodExit = "exit"

	maxStreamLine = 4 * 1024 * 1024
)

// ChangeHandler receives one batch of file change events.
type ChangeHandler func(ctx context.Context, changes []m.FileChange)

type incomingMessage struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type didChangeWatchedFilesParams struct {
	Changes []m.FileChange `json:"changes"`
}

// ChangeSource reads change notifications from newline-delimited JSON-RPC messages.
type ChangeSource struct {
	r io.Reader
}

// NewChangeSource creates a ChangeSource reading from r.
func NewChangeSource(r io.Reader) *ChangeSource {
	return &ChangeSource{r: r}
}

// Run decodes messages until EOF, an exit message or ctx cancellation.
// Malformed lines and unknown methods are logged and skipped.
func (s *ChangeSource) Run(ctx context.Context, handle ChangeHandler) error {
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg incomingMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			slog.Warn("Skipping malformed message", "error", err)
			continue
		}

		switch msg.Method {
		case MethodExit:
			return nil
		case MethodDidChangeWatched:
			var params didChangeWatchedFilesParams
			if err := json.Unmarshal(msg.Params, &params); err != nil {
				slog.Warn("Skipping malformed change notification", "error", err)
				continue
			}

			if len(params.Changes) > 0 {
				handle(ctx, params.Changes)
			}
		default:
			slog.Debug("Ignoring message", "method", msg.Method)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read change stream: %w", err)
	}

	return nil
}
