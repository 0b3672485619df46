package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "warden.dev/pkg/warden/internal/model"
)

const (
	vulnerableController = "class UsersController\n  def show\n    ActiveRecord::Base.where(\"id = #{params[:id]}\")\n  end\nend\n"
	fixedController      = "class UsersController\n  def show\n    User.find(params[:id])\n  end\nend\n"
)

// markerDetector flags every line that contains "BAD".
type markerDetector struct {
	calls int
	err   error
}

func (d *markerDetector) Name() string { return "marker" }

func (d *markerDetector) Detect(_ context.Context, path m.Path, content []byte) ([]m.Finding, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}

	var findings []m.Finding
	for i, line := range strings.Split(string(content), "\n") {
		if strings.Contains(line, "BAD") {
			findings = append(findings, m.Finding{File: path, Line: i + 1, Category: "Marker", Code: "marker"})
		}
	}

	return findings, nil
}

func newTestScanner(t *testing.T, detectors ...Detector) *LocalScannerAdapter {
	t.Helper()

	if len(detectors) == 0 {
		detectors = []Detector{newDefaultRuleDetector(t)}
	}

	return NewLocalScannerAdapter(NewLocalSourceFSAdapter(), detectors, nil)
}

func writeProjectFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLocalScannerAdapter_FullScan(t *testing.T) {
	root := t.TempDir()
	controller := writeProjectFile(t, root, "app/controllers/users_controller.rb", vulnerableController)
	writeProjectFile(t, root, "vendor/bundle/gem.rb", vulnerableController)
	writeProjectFile(t, root, "app/models/user.rb", "class User; end\n")

	scanner := newTestScanner(t)

	state, findings, err := scanner.FullScan(context.Background(), m.Path(root))
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, m.Path(root), state.Root())
	assert.Equal(t, 2, state.Files())
	require.Len(t, findings, 1)
	assert.Equal(t, m.Path(controller), findings[0].File)
	assert.Equal(t, 3, findings[0].Line)
}

func TestLocalScannerAdapter_FullScanUnavailable(t *testing.T) {
	t.Run("no detectors", func(t *testing.T) {
		scanner := NewLocalScannerAdapter(NewLocalSourceFSAdapter(), nil, nil)

		_, _, err := scanner.FullScan(context.Background(), m.Path(t.TempDir()))
		assert.ErrorIs(t, err, ErrScanUnavailable)
	})

	t.Run("missing root", func(t *testing.T) {
		scanner := newTestScanner(t)

		_, _, err := scanner.FullScan(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
		assert.ErrorIs(t, err, ErrScanUnavailable)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		file := writeProjectFile(t, root, "Gemfile", "source 'https://rubygems.org'\n")

		_, _, err := newTestScanner(t).FullScan(context.Background(), m.Path(file))
		assert.ErrorIs(t, err, ErrScanUnavailable)
	})
}

func TestLocalScannerAdapter_PartialRescan(t *testing.T) {
	t.Run("new finding", func(t *testing.T) {
		root := t.TempDir()
		controller := writeProjectFile(t, root, "app/controllers/users_controller.rb", fixedController)

		scanner := newTestScanner(t)
		state, findings, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)
		require.Empty(t, findings)

		writeProjectFile(t, root, "app/controllers/users_controller.rb", vulnerableController)

		next, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(controller)})
		require.NoError(t, err)

		require.Len(t, result.New, 1)
		assert.Equal(t, "params[:id]", result.New[0].Input)
		assert.Len(t, result.All, 1)
		assert.Empty(t, result.Fixed)
		assert.Len(t, next.(*analysisIndex).Findings(), 1)
		assert.Empty(t, state.(*analysisIndex).Findings(), "previous state must be left untouched")
	})

	t.Run("fixed finding", func(t *testing.T) {
		root := t.TempDir()
		controller := writeProjectFile(t, root, "app/controllers/users_controller.rb", vulnerableController)

		scanner := newTestScanner(t)
		state, findings, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)
		require.Len(t, findings, 1)

		writeProjectFile(t, root, "app/controllers/users_controller.rb", fixedController)

		_, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{"app/controllers/users_controller.rb"})
		require.NoError(t, err)

		assert.Empty(t, result.New)
		assert.Empty(t, result.All)
		require.Len(t, result.Fixed, 1)
		assert.Equal(t, m.Path(controller), result.Fixed[0].File)
	})

	t.Run("deleted directory reports nested findings as fixed", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "app/controllers/users_controller.rb", vulnerableController)
		writeProjectFile(t, root, "app/controllers/admin_controller.rb", vulnerableController)

		scanner := newTestScanner(t)
		state, _, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)
		require.Equal(t, 2, state.Files())

		require.NoError(t, os.RemoveAll(filepath.Join(root, "app")))

		next, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(filepath.Join(root, "app"))})
		require.NoError(t, err)

		assert.Len(t, result.Fixed, 2)
		assert.Equal(t, 0, next.Files())
	})

	t.Run("new directory rescans the files inside it", func(t *testing.T) {
		root := t.TempDir()
		scanner := newTestScanner(t)

		state, _, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)

		controller := writeProjectFile(t, root, "app/controllers/users_controller.rb", vulnerableController)
		writeProjectFile(t, root, "app/node_modules/pkg/index.rb", vulnerableController)

		next, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(filepath.Join(root, "app")), m.Path(controller)})
		require.NoError(t, err)

		require.Len(t, result.New, 1)
		assert.Equal(t, m.Path(controller), result.New[0].File)
		assert.Len(t, result.All, 1)
		assert.Empty(t, result.Fixed)
		assert.Equal(t, 1, next.Files())
		assert.Equal(t, 0, state.Files())
	})

	t.Run("unchanged content reuses prior findings", func(t *testing.T) {
		root := t.TempDir()
		file := writeProjectFile(t, root, "notes.txt", "BAD\nok\n")

		detector := &markerDetector{}
		scanner := newTestScanner(t, detector)

		state, _, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)
		require.Equal(t, 1, detector.calls)

		_, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(file), m.Path(file)})
		require.NoError(t, err)

		assert.Equal(t, 1, detector.calls)
		assert.Empty(t, result.New)
		assert.Len(t, result.All, 1)
	})

	t.Run("ignored paths are skipped", func(t *testing.T) {
		root := t.TempDir()
		scanner := newTestScanner(t, &markerDetector{})

		state, _, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)

		file := writeProjectFile(t, root, "node_modules/pkg/index.js", "BAD\n")

		next, result, err := scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(file)})
		require.NoError(t, err)
		assert.Empty(t, result.New)
		assert.Equal(t, 0, next.Files())
	})

	t.Run("detector failure is a rescan error", func(t *testing.T) {
		root := t.TempDir()
		scanner := newTestScanner(t, &markerDetector{})

		state, _, err := scanner.FullScan(context.Background(), m.Path(root))
		require.NoError(t, err)

		file := writeProjectFile(t, root, "lib/task.rb", "BAD\n")
		scanner.detectors = []Detector{&markerDetector{err: errors.New("boom")}}

		_, _, err = scanner.PartialRescan(context.Background(), state, []m.Path{m.Path(file)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRescan)

		var rescanErr *RescanError
		require.ErrorAs(t, err, &rescanErr)
		assert.Equal(t, m.Path(file), rescanErr.Path)
	})

	t.Run("foreign state", func(t *testing.T) {
		_, _, err := newTestScanner(t).PartialRescan(context.Background(), foreignState{}, []m.Path{"a.rb"})
		assert.ErrorIs(t, err, ErrForeignState)
		assert.ErrorIs(t, err, ErrRescan)
	})
}

func TestLocalScannerAdapter_SkipsBinaryAndOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "blob.bin", "BAD\x00\n")
	writeProjectFile(t, root, "big.txt", "BAD\n"+strings.Repeat("x", 64))

	scanner := NewLocalScannerAdapter(NewLocalSourceFSAdapter(), []Detector{&markerDetector{}}, &ScannerOptions{MaxFileSize: 32})

	_, findings, err := scanner.FullScan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

type foreignState struct{}

func (foreignState) Root() m.Path { return "/" }
func (foreignState) Files() int   { return 0 }
