package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden.dev/pkg/warden/internal/adapter"
	adaptermocks "warden.dev/pkg/warden/internal/adapter/mocks"
	"warden.dev/pkg/warden/internal/domain"
	domainmocks "warden.dev/pkg/warden/internal/domain/mocks"
	m "warden.dev/pkg/warden/internal/model"
)

// stubSession swaps newSession and newScanner for the duration of the test and
// returns the session mock plus the config it was built with.
func stubSession(t *testing.T) (*domainmocks.MockSession, *domain.SessionConfig) {
	t.Helper()

	session := domainmocks.NewMockSession(t)
	scanner := adaptermocks.NewMockScannerAdapter(t)
	captured := &domain.SessionConfig{}

	originalSession, originalScanner := newSession, newScanner
	newSession = func(cfg domain.SessionConfig) domain.Session {
		*captured = cfg
		return session
	}
	newScanner = func() (adapter.ScannerAdapter, error) { return scanner, nil }

	t.Cleanup(func() {
		newSession = originalSession
		newScanner = originalScanner
	})

	return session, captured
}

func TestServeCmd_ForwardsChangesToSession(t *testing.T) {
	root := writeProject(t)
	session, cfg := stubSession(t)

	stdin := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","method":"workspace/didChangeWatchedFiles","params":{"changes":[{"uri":"file:///app/models/user.rb","type":2}]}}`,
		`not json`,
		`{"jsonrpc":"2.0","method":"exit"}`,
		`{"jsonrpc":"2.0","method":"workspace/didChangeWatchedFiles","params":{"changes":[{"uri":"file:///never.rb","type":2}]}}`,
	}, "\n"))

	session.EXPECT().OnActivate(mock.Anything, m.Path(root)).Return(nil).Once()
	session.EXPECT().
		OnFilesChanged(mock.Anything, []m.FileChange{{URI: "file:///app/models/user.rb", Kind: m.ChangeChanged}}).
		Return().
		Once()
	session.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

	_, err := executeCommand(t, newServeCmd(), stdin, "serve", root)
	require.NoError(t, err)

	assert.NotNil(t, cfg.Registrar)
	assert.Equal(t, "Warden", cfg.Source)
	assert.Contains(t, cfg.WatchGlobs, "**/Gemfile")
}

func TestServeCmd_WithoutWatchSkipsRegistration(t *testing.T) {
	root := writeProject(t)
	session, cfg := stubSession(t)

	session.EXPECT().OnActivate(mock.Anything, m.Path(root)).Return(nil).Once()
	session.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

	_, err := executeCommand(t, newServeCmd(), strings.NewReader(""), "serve", root, "--watch=false")
	require.NoError(t, err)

	assert.Nil(t, cfg.Registrar)
}

func TestServeCmd_ActivationError(t *testing.T) {
	root := writeProject(t)
	session, _ := stubSession(t)

	session.EXPECT().OnActivate(mock.Anything, m.Path(root)).Return(domain.ErrAlreadyActive).Once()

	_, err := executeCommand(t, newServeCmd(), strings.NewReader(""), "serve", root)
	require.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestRunServe_PublishesOverStdout(t *testing.T) {
	setConfig(t, scanSecretsKey, false)
	setConfig(t, watchEnabledKey, true)
	root := writeProject(t)

	var out strings.Builder

	err := runServe(context.Background(), m.Path(root), strings.NewReader(`{"jsonrpc":"2.0","method":"exit"}`+"\n"), &out)
	require.NoError(t, err)

	methods := map[string]bool{}

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var msg struct {
			Method string `json:"method"`
		}

		require.NoError(t, json.Unmarshal([]byte(line), &msg), line)
		methods[msg.Method] = true
	}

	assert.True(t, methods[adapter.MethodRegisterCapability])
	assert.True(t, methods[adapter.MethodLogMessage])
}

func TestStartMetricsServer_Disabled(t *testing.T) {
	metrics, stop := startMetricsServer("")
	defer stop()

	assert.IsType(t, adapter.NoopMetrics{}, metrics)
}

func TestStartMetricsServer_Handler(t *testing.T) {
	metrics, stop := startMetricsServer("127.0.0.1:0")
	defer stop()

	prom, ok := metrics.(*adapter.PrometheusMetrics)
	require.True(t, ok)

	prom.SetQueueDepth(3)

	server := httptest.NewServer(prom.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "warden_queue_depth 3")
}
