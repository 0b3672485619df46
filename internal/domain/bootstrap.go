package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

// BootstrapCoordinator runs the initial full scan and publishes its snapshot.
type BootstrapCoordinator interface {
	// Bootstrap returns the state the rescan worker starts from. On failure
	// the client is told once and nothing is published.
	Bootstrap(ctx context.Context, root m.Path) (m.AnalysisState, error)
}

type bootstrapCoordinator struct {
	scanner   adapter.ScannerAdapter
	publisher DiagnosticsPublisher
	notices   noticer
	metrics   adapter.RescanMetrics
}

// NewBootstrapCoordinator creates a coordinator. A nil metrics records nothing.
func NewBootstrapCoordinator(
	scanner adapter.ScannerAdapter,
	publisher DiagnosticsPublisher,
	sink adapter.NotificationSink,
	metrics adapter.RescanMetrics,
) BootstrapCoordinator {
	if metrics == nil {
		metrics = adapter.NoopMetrics{}
	}

	return &bootstrapCoordinator{
		scanner:   scanner,
		publisher: publisher,
		notices:   noticer{sink: sink},
		metrics:   metrics,
	}
}

func (b *bootstrapCoordinator) Bootstrap(ctx context.Context, root m.Path) (m.AnalysisState, error) {
	started := time.Now()

	slog.Info("Starting initial scan", "root", root)

	state, findings, err := b.scanner.FullScan(context.WithoutCancel(ctx), root)
	if err != nil {
		b.metrics.ObserveBootstrap(adapter.OutcomeFailed, 0, time.Since(started))
		slog.Error("Initial scan failed", "root", root, "error", err)
		b.notices.failure(ctx, "Failed to activate Warden: %v", err)

		return nil, fmt.Errorf("initial scan: %w", err)
	}

	if state == nil {
		b.metrics.ObserveBootstrap(adapter.OutcomeFailed, 0, time.Since(started))
		b.notices.failure(ctx, "Failed to activate Warden: scanner returned no state")

		return nil, fmt.Errorf("initial scan: %w: no state returned", adapter.ErrScanUnavailable)
	}

	b.metrics.ObserveBootstrap(adapter.OutcomeOK, len(findings), time.Since(started))
	slog.Info("Initial scan complete", "root", root, "files", state.Files(), "findings", len(findings), "elapsed", time.Since(started))

	b.publisher.Publish(ctx, m.RescanResult{New: findings, All: findings})
	b.notices.info(ctx, "Initial Warden scan complete.")

	return state, nil
}
