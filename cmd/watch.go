package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"warden.dev/pkg/warden/internal/adapter"
	"warden.dev/pkg/warden/internal/controller"
	"warden.dev/pkg/warden/internal/domain"
	m "warden.dev/pkg/warden/internal/model"
)

const watchLongDescription = `Watch a project on disk and keep its diagnostics up to date.

Warden watches Ruby sources plus the config, template and dependency files
that affect the analysis. On a terminal it shows a live dashboard (press q
to quit); otherwise it writes the same JSON-RPC notifications as serve.`

var watchDebounceFlag int

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Watch a project and rescan changed files",
		Long:  watchLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			return runWatch(cmd.Context(), root, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&watchDebounceFlag, "debounce", viper.GetInt(watchDebounceKey), "milliseconds to wait for a burst of file events to settle")
	bindFlagToConfig(cmd.Flags().Lookup("debounce"), watchDebounceKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, root m.Path, in io.Reader, out io.Writer) error {
	scanner, err := newScanner()
	if err != nil {
		return err
	}

	watcher, err := adapter.NewFileWatcher(root, &adapter.FileWatcherOptions{
		Debounce: time.Duration(viper.GetInt(watchDebounceKey)) * time.Millisecond,
		Ignore:   viper.GetStringSlice(scanIgnoreKey),
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)

	var sink adapter.NotificationSink = adapter.NewStreamSink(out)

	if controller.IsTerminal(out) {
		dashboard := controller.NewTUISink(root, out, in)
		sink = dashboard

		group.Go(func() error {
			defer cancel()
			return dashboard.Run(groupCtx)
		})
	}

	session := newSession(sessionConfig(scanner, sink, watcher, nil, domain.SourceGlobs))

	if err := session.OnActivate(groupCtx, root); err != nil {
		cancel()
		_ = group.Wait()

		return fmt.Errorf("activate session: %w", err)
	}

	group.Go(func() error {
		return watcher.Run(groupCtx, session.OnFilesChanged)
	})

	runErr := group.Wait()

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()

	if err := session.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Session did not stop cleanly", "error", err)
	}

	return runErr
}
