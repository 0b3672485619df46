package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

const shutdownTimeout = 30 * time.Second

const serveLongDescription = `Serve diagnostics to an editor host over stdio.

Warden reads newline-delimited JSON-RPC notifications from stdin and writes
notifications to stdout:

  in:  workspace/didChangeWatchedFiles, exit
  out: textDocument/publishDiagnostics, window/logMessage,
       client/registerCapability (unless --watch=false)

The initial full scan starts in the background; changed files are rescanned
one batch at a time. Logs go to the rotating log file, never to stdout.`

var serveWatchFlag bool
var serveMetricsAddrFlag string

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve incremental diagnostics over stdio",
		Long:  serveLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			return runServe(cmd.Context(), root, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	configureServeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func configureServeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&serveWatchFlag, watchFlagName, viper.GetBool(watchEnabledKey), "ask the host to watch config and template files")
	bindFlagToConfig(cmd.Flags().Lookup(watchFlagName), watchEnabledKey)

	cmd.Flags().StringVar(&serveMetricsAddrFlag, metricsAddrFlagName, viper.GetString(metricsAddrKey), "serve Prometheus metrics on this address (e.g. :9464)")
	bindFlagToConfig(cmd.Flags().Lookup(metricsAddrFlagName), metricsAddrKey)
}

func runServe(ctx context.Context, root m.Path, in io.Reader, out io.Writer) error {
	scanner, err := newScanner()
	if err != nil {
		return err
	}

	sink := adapter.NewStreamSink(out)

	var registrar adapter.WatchRegistrar
	if viper.GetBool(watchEnabledKey) {
		registrar = sink
	}

	metrics, stopMetrics := startMetricsServer(viper.GetString(metricsAddrKey))
	defer stopMetrics()

	session := newSession(sessionConfig(scanner, sink, registrar, metrics, nil))

	if err := session.OnActivate(ctx, root); err != nil {
		return fmt.Errorf("activate session: %w", err)
	}

	runErr := adapter.NewChangeSource(in).Run(ctx, session.OnFilesChanged)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := session.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Session did not stop cleanly", "error", err)
	}

	return runErr
}

// startMetricsServer serves /metrics on addr. An empty addr disables metrics
// and returns no-op collectors.
func startMetricsServer(addr string) (adapter.RescanMetrics, func()) {
	if addr == "" {
		return adapter.NoopMetrics{}, func() {}
	}

	metrics := adapter.NewPrometheusMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Serving metrics", "addr", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()

	return metrics, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("Failed to stop metrics server", "error", err)
		}
	}
}
