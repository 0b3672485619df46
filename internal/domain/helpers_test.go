package domain

import (
	"context"
	"sync"

	m "warden.dev/pkg/warden/internal/model"
)

// recordingSink keeps every notification it receives.
type recordingSink struct {
	mu        sync.Mutex
	publishes []m.PublishDiagnosticsParams
	logs      []m.LogMessageParams
}

func (s *recordingSink) PublishDiagnostics(_ context.Context, params m.PublishDiagnosticsParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publishes = append(s.publishes, params)

	return nil
}

func (s *recordingSink) LogMessage(_ context.Context, params m.LogMessageParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, params)

	return nil
}

func (s *recordingSink) publishesFor(uri string) []m.PublishDiagnosticsParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []m.PublishDiagnosticsParams
	for _, params := range s.publishes {
		if params.URI == uri {
			matched = append(matched, params)
		}
	}

	return matched
}

func (s *recordingSink) publishCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.publishes)
}

func (s *recordingSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]string, 0, len(s.logs))
	for _, params := range s.logs {
		messages = append(messages, params.Message)
	}

	return messages
}

type stubState struct {
	root m.Path
	gen  int
}

func (s *stubState) Root() m.Path { return s.root }
func (s *stubState) Files() int   { return s.gen }
