// Package cmd provides the root command and CLI setup for warden.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"warden.dev/pkg/warden/internal/adapter"
	"warden.dev/pkg/warden/internal/domain"
	m "warden.dev/pkg/warden/internal/model"
)

var fsAdapter adapter.SourceFSAdapter

// newSession builds the session used by serve and watch. Tests replace it.
var newSession = domain.NewSession

// newScanner builds the scanner from the current configuration. Tests replace it.
var newScanner = buildScanner

// verboseFlag forces debug logging.
var verboseFlag bool

// logFlag overrides the log file path.
var logFlag string

// rulesFlag points at a YAML rules file replacing the built-in rules.
var rulesFlag string

// secretsFlag toggles the hard-coded secrets detector.
var secretsFlag bool

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
}

const rootLongDescription = `Warden keeps security diagnostics for a Ruby on Rails project up to date
while you edit. It runs one full scan at startup and then rescans only
the files that change, publishing findings to an editor-protocol client
over stdio or to a terminal dashboard.

The project root is found by walking up from the given path until a
warden.yaml, Gemfile or .git entry is found.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "warden",
		Short:        "Incremental security diagnostics for Rails projects",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFlag, logFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logFilenameKey)

	cmd.PersistentFlags().StringVar(&rulesFlag, rulesFlagName, viper.GetString(scanRulesFileKey), "YAML rules file replacing the built-in rules")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rulesFlagName), scanRulesFileKey)

	cmd.PersistentFlags().BoolVar(&secretsFlag, secretsFlagName, viper.GetBool(scanSecretsKey), "also report hard-coded secrets")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(secretsFlagName), scanSecretsKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}

// resolveRoot turns the optional [root] argument into the project root. When
// no project marker exists above the path, the path itself is used.
func resolveRoot(args []string) (m.Path, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", start, err)
	}

	root, err := fsAdapter.FindProjectRoot(m.Path(abs))
	if err != nil {
		return m.Path(abs), nil
	}

	return root, nil
}
