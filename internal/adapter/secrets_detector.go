package adapter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"

	m "warden.dev/pkg/warden/internal/model"
)

const (
	// SecretsDetectorName is the Source of findings produced by SecretsDetector.
	SecretsDetectorName = "gitleaks"

	secretsCategory  = "Hardcoded Secret"
	secretVisibleLen = 4
)

// SecretsDetector finds hard-coded credentials with the gitleaks rule set.
type SecretsDetector struct {
	mu       sync.Mutex
	detector *detect.Detector
}

// NewSecretsDetector builds a detector from gitleaks' embedded default config.
func NewSecretsDetector() (*SecretsDetector, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if err := v.ReadConfig(bytes.NewBufferString(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate ViperConfig to Config: %w", err)
	}

	return &SecretsDetector{detector: detect.NewDetector(cfg)}, nil
}

// Name implements Detector.
func (d *SecretsDetector) Name() string {
	return SecretsDetectorName
}

// Detect implements Detector.
func (d *SecretsDetector) Detect(ctx context.Context, path m.Path, content []byte) ([]m.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// FilePath lets gitleaks apply its global path allowlist.
	d.mu.Lock()
	leaks := d.detector.Detect(detect.Fragment{Raw: string(content), FilePath: string(path)})
	d.mu.Unlock()

	locator := newMatchLocator(content)
	findings := make([]m.Finding, 0, len(leaks))

	for _, leak := range leaks {
		findings = append(findings, secretFinding(path, leak, locator))
	}

	return findings, nil
}

func secretFinding(path m.Path, leak report.Finding, locator *matchLocator) m.Finding {
	message := strings.TrimSuffix(strings.TrimSpace(leak.Description), ".")
	if message == "" {
		message = "Possible hard-coded secret"
	}

	return m.Finding{
		File:       path,
		Line:       locator.line(leak.Match, leak.StartLine),
		Confidence: m.ConfidenceHigh,
		Category:   secretsCategory,
		Message:    message,
		Input:      redactSecret(leak.Secret),
		Code:       leak.RuleID,
		Source:     SecretsDetectorName,
	}
}

// matchLocator finds the 1-based line of each match in the scanned content.
// Repeated matches resolve to successive occurrences.
type matchLocator struct {
	content string
	cursor  map[string]int
}

func newMatchLocator(content []byte) *matchLocator {
	return &matchLocator{content: string(content), cursor: map[string]int{}}
}

func (l *matchLocator) line(match string, fallback int) int {
	if match != "" {
		from := l.cursor[match]
		if from <= len(l.content) {
			if idx := strings.Index(l.content[from:], match); idx >= 0 {
				offset := from + idx
				l.cursor[match] = offset + len(match)

				return strings.Count(l.content[:offset], "\n") + 1
			}
		}
	}

	if fallback < 1 {
		return 1
	}

	return fallback
}

// redactSecret keeps a short prefix so the diagnostic identifies the value
// without echoing it.
func redactSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= secretVisibleLen {
		return strings.Repeat("*", len(secret))
	}

	return secret[:secretVisibleLen] + strings.Repeat("*", 8)
}
