package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

const maxNotices = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fileStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// TUISink is a NotificationSink that renders live diagnostics in a Bubble Tea
// dashboard.
type TUISink struct {
	program *tea.Program
}

var _ adapter.NotificationSink = (*TUISink)(nil)

// NewTUISink creates a dashboard for root. Call Run to show it.
func NewTUISink(root m.Path, output io.Writer, input io.Reader) *TUISink {
	program := tea.NewProgram(newDashboardModel(root), tea.WithOutput(output), tea.WithInput(input))

	return &TUISink{program: program}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func (s *TUISink) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.program.Quit)
	defer stop()

	if _, err := s.program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}

	return nil
}

// PublishDiagnostics implements adapter.NotificationSink.
func (s *TUISink) PublishDiagnostics(ctx context.Context, params m.PublishDiagnosticsParams) error {
	if err := ctx.Err(); err != nil {
		return &adapter.TransportError{Method: adapter.MethodPublishDiagnostics, Err: err}
	}

	s.program.Send(diagnosticsMsg(params))

	return nil
}

// LogMessage implements adapter.NotificationSink.
func (s *TUISink) LogMessage(ctx context.Context, params m.LogMessageParams) error {
	if err := ctx.Err(); err != nil {
		return &adapter.TransportError{Method: adapter.MethodLogMessage, Err: err}
	}

	s.program.Send(noticeMsg(params))

	return nil
}

type diagnosticsMsg m.PublishDiagnosticsParams

type noticeMsg m.LogMessageParams

type dashboardModel struct {
	root     m.Path
	spinner  spinner.Model
	files    map[string][]m.Diagnostic
	order    []string
	notices  []string
	width    int
	quitting bool
}

func newDashboardModel(root m.Path) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return dashboardModel{
		root:    root,
		spinner: s,
		files:   make(map[string][]m.Diagnostic),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.spinner.Tick
}

func (d dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			d.quitting = true
			return d, tea.Quit
		}

		return d, nil

	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case diagnosticsMsg:
		d.applyDiagnostics(m.PublishDiagnosticsParams(msg))
		return d, nil

	case noticeMsg:
		d.notices = append(d.notices, msg.Message)
		if len(d.notices) > maxNotices {
			d.notices = d.notices[len(d.notices)-maxNotices:]
		}

		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)

		return d, cmd
	}

	return d, nil
}

// applyDiagnostics replaces the list of one file. An empty list removes it.
func (d *dashboardModel) applyDiagnostics(params m.PublishDiagnosticsParams) {
	files := make(map[string][]m.Diagnostic, len(d.files)+1)
	for uri, diagnostics := range d.files {
		files[uri] = diagnostics
	}

	_, known := files[params.URI]

	if len(params.Diagnostics) == 0 {
		delete(files, params.URI)

		order := make([]string, 0, len(d.order))
		for _, uri := range d.order {
			if uri != params.URI {
				order = append(order, uri)
			}
		}

		d.files, d.order = files, order

		return
	}

	files[params.URI] = params.Diagnostics
	d.files = files

	if !known {
		d.order = append(append([]string(nil), d.order...), params.URI)
	}
}

func (d dashboardModel) View() string {
	if d.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Warden"))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(string(d.root)))
	b.WriteString("\n\n")

	status := "watching for changes"
	if len(d.notices) > 0 {
		status = strings.TrimPrefix(d.notices[len(d.notices)-1], "[Warden] ")
	}

	fmt.Fprintf(&b, "%s %s\n\n", d.spinner.View(), status)

	total := 0

	for _, uri := range d.order {
		diagnostics := d.files[uri]
		total += len(diagnostics)

		b.WriteString(fileStyle.Render(d.displayPath(uri)))
		b.WriteString("\n")

		for _, diagnostic := range diagnostics {
			headline, _, _ := strings.Cut(diagnostic.Message, "\n")
			fmt.Fprintf(&b, "  %s %s %s\n",
				mutedStyle.Render(fmt.Sprintf("L%d", diagnostic.Range.Start.Line+1)),
				severityLabel(diagnostic.Severity),
				headline)
		}
	}

	if len(d.order) == 0 {
		b.WriteString(mutedStyle.Render("No findings."))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d finding(s) in %d file(s) · q to quit", total, len(d.order))))

	return b.String()
}

func (d dashboardModel) displayPath(uri string) string {
	path, err := m.PathFromURI(uri)
	if err != nil {
		return uri
	}

	return relativeTo(d.root, path)
}

func severityLabel(severity m.Severity) string {
	switch severity {
	case m.SeverityError:
		return errorStyle.Render("error")
	case m.SeverityWarning:
		return warningStyle.Render("warning")
	default:
		return infoStyle.Render("info")
	}
}
