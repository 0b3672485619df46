package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

// WorkerState is the lifecycle state of the rescan worker.
type WorkerState int32

const (
	// StateInactive means the session has not been activated.
	StateInactive WorkerState = iota
	// StateBootstrapping means the initial full scan is running.
	StateBootstrapping
	// StateIdle means the worker is waiting for changes.
	StateIdle
	// StateRescanning means a partial rescan is running.
	StateRescanning
	// StateTerminated means the session was shut down.
	StateTerminated
	// StateUnavailable means the initial scan failed and no rescans will run.
	StateUnavailable
)

func (s WorkerState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateBootstrapping:
		return "bootstrapping"
	case StateIdle:
		return "idle"
	case StateRescanning:
		return "rescanning"
	case StateTerminated:
		return "terminated"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// RescanWorker owns the analysis state for one session. It bootstraps once,
// then rescans each batch drained from the change queue.
type RescanWorker interface {
	// Run blocks until the queue is closed or ctx is cancelled. Scan failures
	// never end the loop; a failed bootstrap returns nil with the worker
	// Unavailable.
	Run(ctx context.Context, root m.Path) error
	State() WorkerState
}

type rescanWorker struct {
	scanner   adapter.ScannerAdapter
	queue     ChangeQueue
	bootstrap BootstrapCoordinator
	publisher DiagnosticsPublisher
	notices   noticer
	metrics   adapter.RescanMetrics

	state    atomic.Int32
	analysis m.AnalysisState
}

// NewRescanWorker wires a worker. A nil metrics records nothing.
func NewRescanWorker(
	scanner adapter.ScannerAdapter,
	queue ChangeQueue,
	bootstrap BootstrapCoordinator,
	publisher DiagnosticsPublisher,
	sink adapter.NotificationSink,
	metrics adapter.RescanMetrics,
) RescanWorker {
	if metrics == nil {
		metrics = adapter.NoopMetrics{}
	}

	return &rescanWorker{
		scanner:   scanner,
		queue:     queue,
		bootstrap: bootstrap,
		publisher: publisher,
		notices:   noticer{sink: sink},
		metrics:   metrics,
	}
}

func (w *rescanWorker) State() WorkerState {
	return WorkerState(w.state.Load())
}

func (w *rescanWorker) setState(state WorkerState) {
	previous := WorkerState(w.state.Swap(int32(state)))
	if previous != state {
		slog.Debug("Rescan worker state changed", "from", previous, "to", state)
	}
}

func (w *rescanWorker) Run(ctx context.Context, root m.Path) error {
	w.setState(StateBootstrapping)

	state, err := w.bootstrap.Bootstrap(ctx, root)
	if err != nil {
		w.setState(StateUnavailable)
		return nil
	}

	w.analysis = state
	w.setState(StateIdle)

	for {
		batch, err := w.queue.DrainBatch(ctx)
		if err != nil {
			if !errors.Is(err, ErrQueueClosed) && ctx.Err() == nil {
				slog.Error("Change queue failed", "error", err)
			}

			w.setState(StateTerminated)

			return nil
		}

		w.metrics.SetQueueDepth(w.queue.Len())
		w.rescan(ctx, batch)
	}
}

// rescan runs one batch to completion. Cancelling ctx does not interrupt it.
func (w *rescanWorker) rescan(ctx context.Context, batch []m.Path) {
	if len(batch) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	started := time.Now()
	names := joinPaths(batch)

	w.setState(StateRescanning)
	defer w.setState(StateIdle)

	w.notices.info(ctx, "Rescanning %s", names)

	next, result, err := w.scanner.PartialRescan(ctx, w.analysis, batch)
	if err != nil {
		w.metrics.ObserveRescan(adapter.OutcomeFailed, len(batch), 0, 0, time.Since(started))
		slog.Error("Rescan failed", "paths", len(batch), "error", err)
		w.notices.failure(ctx, "Rescan failed for %s: %v", names, err)

		return
	}

	if next != nil {
		w.analysis = next
	}

	w.notices.info(ctx, "Rescanned %s", names)
	w.publisher.Publish(ctx, result)

	w.metrics.ObserveRescan(adapter.OutcomeOK, len(batch), len(result.New), len(result.Fixed), time.Since(started))
	slog.Debug("Rescan complete", "paths", len(batch), "new", len(result.New), "fixed", len(result.Fixed), "elapsed", time.Since(started))

	w.notices.info(ctx, "Warnings: %d new, %d fixed, %d total", len(result.New), len(result.Fixed), len(result.All))
}
