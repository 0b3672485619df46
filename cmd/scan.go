package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"warden.dev/pkg/warden/internal/adapter"
	"warden.dev/pkg/warden/internal/controller"
	"warden.dev/pkg/warden/internal/domain"
	m "warden.dev/pkg/warden/internal/model"
)

const (
	formatTable       = "table"
	formatDiagnostics = "diagnostics"
)

var scanFormatFlag string

// newUI builds the one-shot output for cmd. Tests replace it.
var newUI = func(cmd *cobra.Command) controller.UI {
	return controller.NewSimpleUI(cmd)
}

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Run one full scan and print the findings",
		Long: `Run one full scan of the project and print every finding.

With --format diagnostics the findings are written as publishDiagnostics
notifications, one per file, exactly as serve would publish them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			switch scanFormatFlag {
			case formatTable, formatDiagnostics:
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", scanFormatFlag, formatTable, formatDiagnostics)
			}

			findings, err := runScan(cmd.Context(), root)
			if err != nil {
				return err
			}

			if scanFormatFlag == formatDiagnostics {
				return writeDiagnostics(cmd.Context(), cmd.OutOrStdout(), findings)
			}

			return newUI(cmd).DisplayFindings(cmd.Context(), root, findings)
		},
	}

	cmd.Flags().StringVarP(&scanFormatFlag, formatFlagName, "f", formatTable, "output format: table or diagnostics")

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(ctx context.Context, root m.Path) ([]m.Finding, error) {
	scanner, err := newScanner()
	if err != nil {
		return nil, err
	}

	_, findings, err := scanner.FullScan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return findings, nil
}

func writeDiagnostics(ctx context.Context, out io.Writer, findings []m.Finding) error {
	if len(findings) == 0 {
		return nil
	}

	publisher := domain.NewDiagnosticsPublisher(
		adapter.NewStreamSink(out),
		domain.WithSource(viper.GetString(diagnosticsSourceKey)),
	)
	publisher.Publish(ctx, m.RescanResult{New: findings, All: findings})

	return nil
}
