// Package controller provides terminal output adapters for findings, rules and
// live diagnostics.
package controller

import (
	"context"

	m "warden.dev/pkg/warden/internal/model"
)

// UI displays one-shot scan results.
// Implementations can use different output methods (plain tables, machine output, etc).
type UI interface {
	DisplayFindings(ctx context.Context, root m.Path, findings []m.Finding) error
	DisplayRules(ctx context.Context, rules []m.Rule) error
}
