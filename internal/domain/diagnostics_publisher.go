package domain

import (
	"context"
	"log/slog"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

const (
	// DefaultDiagnosticSource is the diagnostic source when none is configured.
	DefaultDiagnosticSource = "Warden"

	// wholeLineEnd is the end character used to highlight an entire line.
	wholeLineEnd = 1000
)

// DiagnosticsPublisher turns scan deltas into per-file diagnostic publishes.
type DiagnosticsPublisher interface {
	// Publish sends every file of result.All its complete diagnostic list and
	// clears files that only appear in result.Fixed.
	Publish(ctx context.Context, result m.RescanResult)
}

// PublisherOption configures a DiagnosticsPublisher.
type PublisherOption func(*diagnosticsPublisher)

// WithSource sets the diagnostic source label.
func WithSource(source string) PublisherOption {
	return func(p *diagnosticsPublisher) {
		if source != "" {
			p.source = source
		}
	}
}

// WithPublishMetrics records the number of files published.
func WithPublishMetrics(metrics adapter.RescanMetrics) PublisherOption {
	return func(p *diagnosticsPublisher) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

type diagnosticsPublisher struct {
	sink    adapter.NotificationSink
	source  string
	metrics adapter.RescanMetrics
}

// NewDiagnosticsPublisher creates a publisher writing to sink.
func NewDiagnosticsPublisher(sink adapter.NotificationSink, opts ...PublisherOption) DiagnosticsPublisher {
	p := &diagnosticsPublisher{
		sink:    sink,
		source:  DefaultDiagnosticSource,
		metrics: adapter.NoopMetrics{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *diagnosticsPublisher) Publish(ctx context.Context, result m.RescanResult) {
	current := groupByFile(result.All)
	published := 0

	for _, group := range current.groups {
		diagnostics := make([]m.Diagnostic, 0, len(group.findings))
		for _, finding := range group.findings {
			diagnostics = append(diagnostics, ToDiagnostic(finding, p.source))
		}

		p.send(ctx, group.file, diagnostics)
		published++
	}

	for _, group := range groupByFile(result.Fixed).groups {
		if current.has(group.file) {
			continue
		}

		p.send(ctx, group.file, []m.Diagnostic{})
		published++
	}

	p.metrics.ObservePublish(published)
}

func (p *diagnosticsPublisher) send(ctx context.Context, file m.Path, diagnostics []m.Diagnostic) {
	params := m.PublishDiagnosticsParams{URI: m.URIFromPath(file), Diagnostics: diagnostics}

	if err := p.sink.PublishDiagnostics(ctx, params); err != nil {
		slog.Warn("Failed to publish diagnostics", "file", file, "error", err)
	}
}

// SeverityFor maps a confidence level to a diagnostic severity. Unknown
// levels map to Information.
func SeverityFor(confidence m.Confidence) m.Severity {
	switch confidence {
	case m.ConfidenceHigh:
		return m.SeverityError
	case m.ConfidenceMedium:
		return m.SeverityWarning
	default:
		return m.SeverityInformation
	}
}

// ToDiagnostic converts a finding into a diagnostic covering its whole line.
func ToDiagnostic(finding m.Finding, source string) m.Diagnostic {
	line := max(finding.Line-1, 0)

	diagnostic := m.Diagnostic{
		Range: m.Range{
			Start: m.Position{Line: line, Character: 0},
			End:   m.Position{Line: line, Character: wholeLineEnd},
		},
		Severity: SeverityFor(finding.Confidence),
		Code:     finding.Code,
		Source:   source,
		Message:  FormatMessage(finding),
	}

	if finding.Link != "" {
		diagnostic.CodeDescription = &m.CodeDescription{Href: finding.Link}
	}

	return diagnostic
}

// FormatMessage renders the diagnostic text of a finding:
//
//	[<category>] <message>.\n
//
// followed, when the finding names its input, by a blank line and
//
//	Dangerous value: `<input>`
func FormatMessage(finding m.Finding) string {
	message := "[" + finding.Category + "] " + finding.Message + ".\n"

	if finding.Input != "" {
		message += "\nDangerous value: `" + finding.Input + "`"
	}

	return message
}

type fileGroup struct {
	file     m.Path
	findings []m.Finding
}

// fileGroups keeps findings grouped by file in first-appearance order.
type fileGroups struct {
	groups []*fileGroup
	index  map[m.Path]*fileGroup
}

func groupByFile(findings []m.Finding) fileGroups {
	g := fileGroups{index: make(map[m.Path]*fileGroup)}

	for _, finding := range findings {
		group, ok := g.index[finding.File]
		if !ok {
			group = &fileGroup{file: finding.File}
			g.index[finding.File] = group
			g.groups = append(g.groups, group)
		}

		group.findings = append(group.findings, finding)
	}

	return g
}

func (g fileGroups) has(file m.Path) bool {
	_, ok := g.index[file]
	return ok
}
