package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"warden.dev/pkg/warden/internal/adapter"
	"warden.dev/pkg/warden/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "warden"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	verboseFlagName     = "verbose"
	logFlagName         = "log"
	rulesFlagName       = "rules"
	secretsFlagName     = "secrets"
	watchFlagName       = "watch"
	metricsAddrFlagName = "metrics-addr"
	formatFlagName      = "format"

	scanRulesFileKey   = "scan.rules_file"
	scanSecretsKey     = "scan.secrets"
	scanMaxFileSizeKey = "scan.max_file_size"
	scanIgnoreKey      = "scan.ignore"

	watchEnabledKey  = "watch.enabled"
	watchGlobsKey    = "watch.globs"
	watchDebounceKey = "watch.debounce_ms"

	queueMaxBatchKey = "queue.max_batch"
	queueSettleKey   = "queue.settle_ms"

	metricsAddrKey       = "serve.metrics_addr"
	diagnosticsSourceKey = "diagnostics.source"

	defaultScanSecrets     = true
	defaultScanMaxFileSize = 1 << 20
	defaultWatchEnabled    = true
	defaultWatchDebounceMs = 100
	defaultQueueMaxBatch   = 0
	defaultQueueSettleMs   = 0

	envPrefix = "WARDEN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".warden.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(scanRulesFileKey, "")
	viper.SetDefault(scanSecretsKey, defaultScanSecrets)
	viper.SetDefault(scanMaxFileSizeKey, defaultScanMaxFileSize)
	viper.SetDefault(scanIgnoreKey, adapter.DefaultScannerOptions().Ignore)
	viper.SetDefault(watchEnabledKey, defaultWatchEnabled)
	viper.SetDefault(watchGlobsKey, []string{})
	viper.SetDefault(watchDebounceKey, defaultWatchDebounceMs)
	viper.SetDefault(queueMaxBatchKey, defaultQueueMaxBatch)
	viper.SetDefault(queueSettleKey, defaultQueueSettleMs)
	viper.SetDefault(metricsAddrKey, "")
	viper.SetDefault(diagnosticsSourceKey, domain.DefaultDiagnosticSource)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		// Stdout carries the protocol stream in serve.
		fmt.Fprintf(os.Stderr, "warden: ignoring %s: %v\n", configFileName, err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	// Text handler with source locations, written through the rotating file.
	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
