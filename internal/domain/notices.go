package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

// NoticePrefix starts every window/logMessage notice.
const NoticePrefix = "[Warden] "

// noticer sends free-text progress notices to the client log.
type noticer struct {
	sink adapter.NotificationSink
}

func (n noticer) info(ctx context.Context, format string, args ...any) {
	n.send(ctx, m.MessageLog, format, args...)
}

func (n noticer) failure(ctx context.Context, format string, args ...any) {
	n.send(ctx, m.MessageError, format, args...)
}

func (n noticer) send(ctx context.Context, typ m.MessageType, format string, args ...any) {
	if n.sink == nil {
		return
	}

	message := NoticePrefix + fmt.Sprintf(format, args...)

	if err := n.sink.LogMessage(ctx, m.LogMessageParams{Type: typ, Message: message}); err != nil {
		slog.Warn("Failed to send notice", "message", message, "error", err)
	}
}

func joinPaths(paths []m.Path) string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = string(path)
	}

	return strings.Join(names, ", ")
}
