package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"warden.dev/pkg/warden/internal/adapter"
	"warden.dev/pkg/warden/internal/domain"
	m "warden.dev/pkg/warden/internal/model"
)

func loadRules() ([]m.Rule, error) {
	path := strings.TrimSpace(viper.GetString(scanRulesFileKey))
	if path == "" {
		return adapter.DefaultRules()
	}

	rules, err := adapter.LoadRulesFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	return rules, nil
}

func buildDetectors() ([]adapter.Detector, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}

	ruleDetector, err := adapter.NewRuleDetector(rules)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	detectors := []adapter.Detector{ruleDetector}

	if viper.GetBool(scanSecretsKey) {
		secrets, err := adapter.NewSecretsDetector()
		if err != nil {
			return nil, fmt.Errorf("load secrets detector: %w", err)
		}

		detectors = append(detectors, secrets)
	}

	return detectors, nil
}

func buildScanner() (adapter.ScannerAdapter, error) {
	detectors, err := buildDetectors()
	if err != nil {
		return nil, err
	}

	opts := adapter.DefaultScannerOptions()
	opts.MaxFileSize = viper.GetInt64(scanMaxFileSizeKey)

	if ignore := viper.GetStringSlice(scanIgnoreKey); len(ignore) > 0 {
		opts.Ignore = ignore
	}

	return adapter.NewLocalScannerAdapter(fsAdapter, detectors, &opts), nil
}

func queueOptions() []domain.QueueOption {
	return []domain.QueueOption{
		domain.WithMaxBatchSize(viper.GetInt(queueMaxBatchKey)),
		domain.WithSettleDelay(time.Duration(viper.GetInt(queueSettleKey)) * time.Millisecond),
	}
}

// sessionConfig assembles the session collaborators. globs is merged with the
// watch.globs setting.
func sessionConfig(scanner adapter.ScannerAdapter, sink adapter.NotificationSink, registrar adapter.WatchRegistrar, metrics adapter.RescanMetrics, globs []string) domain.SessionConfig {
	return domain.SessionConfig{
		Scanner:      scanner,
		Sink:         sink,
		Registrar:    registrar,
		Metrics:      metrics,
		Source:       viper.GetString(diagnosticsSourceKey),
		WatchGlobs:   domain.WatchGlobs(globs, viper.GetStringSlice(watchGlobsKey)),
		QueueOptions: queueOptions(),
	}
}
