package adapter

import (
	"context"

	m "warden.dev/pkg/warden/internal/model"
)

// Detector inspects the content of a single file and reports findings.
// Detectors must be stateless between calls; the scanner owns all state.
type Detector interface {
	Name() string
	Detect(ctx context.Context, path m.Path, content []byte) ([]m.Finding, error)
}
