package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden.dev/pkg/warden/internal/adapter"
	m "warden.dev/pkg/warden/internal/model"
)

func update(t *testing.T, model dashboardModel, msg tea.Msg) dashboardModel {
	t.Helper()

	next, _ := model.Update(msg)

	updated, ok := next.(dashboardModel)
	require.True(t, ok)

	return updated
}

func TestDashboardModel_DiagnosticsReplaceAndClear(t *testing.T) {
	model := newDashboardModel("/p")

	model = update(t, model, diagnosticsMsg{
		URI: "file:///p/app/controllers/users_controller.rb",
		Diagnostics: []m.Diagnostic{{
			Range:    m.Range{Start: m.Position{Line: 2}, End: m.Position{Line: 2, Character: 1000}},
			Severity: m.SeverityError,
			Message:  "[SQL Injection] Possible SQL injection.\n\nDangerous value: `params[:id]`",
		}},
	})
	model = update(t, model, diagnosticsMsg{
		URI:         "file:///p/app/models/user.rb",
		Diagnostics: []m.Diagnostic{{Severity: m.SeverityInformation, Message: "[Weak Hash] Weak hashing algorithm used.\n"}},
	})

	view := model.View()
	assert.Contains(t, view, "app/controllers/users_controller.rb")
	assert.Contains(t, view, "L3")
	assert.Contains(t, view, "error")
	assert.Contains(t, view, "[SQL Injection] Possible SQL injection.")
	assert.NotContains(t, view, "Dangerous value")
	assert.Contains(t, view, "2 finding(s) in 2 file(s)")

	model = update(t, model, diagnosticsMsg{URI: "file:///p/app/models/user.rb", Diagnostics: []m.Diagnostic{}})

	view = model.View()
	assert.NotContains(t, view, "app/models/user.rb")
	assert.Contains(t, view, "1 finding(s) in 1 file(s)")
}

func TestDashboardModel_Notices(t *testing.T) {
	model := newDashboardModel("/p")
	assert.Contains(t, model.View(), "watching for changes")
	assert.Contains(t, model.View(), "No findings.")

	for i := 0; i < maxNotices+3; i++ {
		model = update(t, model, noticeMsg{Type: m.MessageLog, Message: "[Warden] Rescanned /p/a.rb"})
	}

	assert.Len(t, model.notices, maxNotices)
	assert.Contains(t, model.View(), "Rescanned /p/a.rb")
}

func TestDashboardModel_Quit(t *testing.T) {
	model := newDashboardModel("/p")

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	assert.True(t, next.(dashboardModel).quitting)
	assert.Empty(t, next.(dashboardModel).View())
}

func TestTUISink_RejectsCancelledContext(t *testing.T) {
	sink := NewTUISink("/p", &bytes.Buffer{}, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var transportErr *adapter.TransportError

	err := sink.PublishDiagnostics(ctx, m.PublishDiagnosticsParams{URI: "file:///p/a.rb"})
	require.ErrorAs(t, err, &transportErr)

	err = sink.LogMessage(ctx, m.LogMessageParams{Message: "x"})
	require.ErrorAs(t, err, &transportErr)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
