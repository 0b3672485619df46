package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

// ErrAlreadyActive is returned when a session is activated twice.
var ErrAlreadyActive = errors.New("session already active")

// Session is the surface the editor host talks to.
type Session interface {
	// OnActivate starts the initial scan in the background and returns
	// immediately.
	OnActivate(ctx context.Context, root m.Path) error

	// OnFilesChanged queues the paths of changes for rescanning and returns
	// immediately.
	OnFilesChanged(ctx context.Context, changes []m.FileChange)

	// Shutdown stops draining changes and waits for the running rescan, or
	// for ctx to expire.
	Shutdown(ctx context.Context) error

	State() WorkerState
}

// SessionConfig holds the collaborators of a Session.
type SessionConfig struct {
	Scanner adapter.ScannerAdapter
	Sink    adapter.NotificationSink

	// Registrar receives the watch globs on activation. Nil skips
	// registration, for hosts that cannot watch files.
	Registrar adapter.WatchRegistrar

	Metrics      adapter.RescanMetrics
	Source       string
	WatchGlobs   []string
	QueueOptions []QueueOption
}

type session struct {
	id      string
	cfg     SessionConfig
	queue   ChangeQueue
	worker  RescanWorker
	notices noticer

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewSession wires the rescan pipeline. Nothing runs until OnActivate.
func NewSession(cfg SessionConfig) Session {
	if cfg.Metrics == nil {
		cfg.Metrics = adapter.NoopMetrics{}
	}

	queue := NewChangeQueue(cfg.QueueOptions...)
	publisher := NewDiagnosticsPublisher(cfg.Sink, WithSource(cfg.Source), WithPublishMetrics(cfg.Metrics))
	bootstrap := NewBootstrapCoordinator(cfg.Scanner, publisher, cfg.Sink, cfg.Metrics)

	return &session{
		id:      uuid.NewString(),
		cfg:     cfg,
		queue:   queue,
		worker:  NewRescanWorker(cfg.Scanner, queue, bootstrap, publisher, cfg.Sink, cfg.Metrics),
		notices: noticer{sink: cfg.Sink},
	}
}

func (s *session) OnActivate(ctx context.Context, root m.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrAlreadyActive
	}

	s.active = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	group, groupCtx := errgroup.WithContext(runCtx)

	s.cancel = cancel
	s.group = group

	logger := slog.With("session", s.id, "root", root)
	logger.Info("Activating session")

	group.Go(func() error {
		return s.worker.Run(groupCtx, root)
	})

	if err := s.registerWatchers(ctx); err != nil {
		logger.Warn("Failed to register file watchers", "error", err)
	}

	s.notices.info(ctx, "Activated Warden")

	return nil
}

func (s *session) registerWatchers(ctx context.Context) error {
	if s.cfg.Registrar == nil {
		slog.Debug("Skipping watcher registration, host cannot watch files")
		return nil
	}

	globs := WatchGlobs(s.cfg.WatchGlobs)
	if err := s.cfg.Registrar.RegisterWatchers(ctx, Watchers(globs)); err != nil {
		return fmt.Errorf("register watchers: %w", err)
	}

	slog.Debug("Registered file watchers", "globs", len(globs))

	return nil
}

func (s *session) OnFilesChanged(ctx context.Context, changes []m.FileChange) {
	if s.worker.State() == StateUnavailable {
		slog.Debug("Dropping changes, scanner unavailable", "changes", len(changes))
		return
	}

	queued := make([]m.Path, 0, len(changes))

	for _, change := range changes {
		path, err := m.PathFromURI(change.URI)
		if err != nil {
			slog.Warn("Ignoring change with unusable URI", "uri", change.URI, "error", err)
			continue
		}

		s.queue.Enqueue(path)
		queued = append(queued, path)
	}

	if len(queued) == 0 {
		return
	}

	s.cfg.Metrics.SetQueueDepth(s.queue.Len())
	s.notices.info(ctx, "Queued %s", joinPaths(queued))
}

func (s *session) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	group, cancel := s.group, s.cancel
	s.mu.Unlock()

	s.queue.Close()

	if group == nil {
		return nil
	}

	cancel()

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		slog.Info("Session stopped", "session", s.id)
		return err
	case <-ctx.Done():
		return fmt.Errorf("wait for rescan: %w", ctx.Err())
	}
}

func (s *session) State() WorkerState {
	return s.worker.State()
}
