package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "warden", configBaseName)
	assert.Equal(t, "warden.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "scan.rules_file", scanRulesFileKey)
	assert.Equal(t, "scan.secrets", scanSecretsKey)
	assert.Equal(t, "watch.enabled", watchEnabledKey)
	assert.Equal(t, "queue.max_batch", queueMaxBatchKey)
	assert.Equal(t, "serve.metrics_addr", metricsAddrKey)
	assert.Equal(t, ".warden.log", defaultLogFilename)
	assert.Equal(t, "WARDEN", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.True(t, viper.GetBool(scanSecretsKey))
	assert.True(t, viper.GetBool(watchEnabledKey))
	assert.Equal(t, 100, viper.GetInt(watchDebounceKey))
	assert.Equal(t, int64(1<<20), viper.GetInt64(scanMaxFileSizeKey))
	assert.Contains(t, viper.GetStringSlice(scanIgnoreKey), "node_modules")
	assert.Equal(t, "Warden", viper.GetString(diagnosticsSourceKey))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("WARDEN_QUEUE_MAX_BATCH", "25")

	assert.Equal(t, 25, viper.GetInt(queueMaxBatchKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}
