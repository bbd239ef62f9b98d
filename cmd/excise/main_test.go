package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnanigans/excise/internal/config"
)

const viewSource = `import SwiftUI

struct TribeListView: View {
    var body: some View { Text("hi") }
}

// MARK: - View Model
@MainActor
class TribeListViewModel: ObservableObject { @Published var tribes: [Tribe] = [] }

#Preview { TribeListView() }
`

// setupWorkspace writes one view file and a config that targets it plus a
// file that does not exist.
func setupWorkspace(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Views"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Views", "TribeListView.swift"), []byte(viewSource), 0o644))

	cfg := config.DefaultConfig()
	cfg.Root = dir
	cfg.Targets = []config.Target{
		{Path: "Views/TribeListView.swift", Name: "TribeListViewModel", Hint: 9},
		{Path: "Views/Missing.swift", Name: "MissingViewModel", Hint: 1},
	}
	configPath = filepath.Join(dir, "excise.yaml")
	require.NoError(t, cfg.Save(configPath))
	return dir, configPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("EXCISE_ROOT", "")
	t.Setenv("EXCISE_MARKER", "")
	t.Setenv("EXCISE_KEYWORD", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunRewritesFiles(t *testing.T) {
	dir, configPath := setupWorkspace(t)

	out, err := execute(t, "--config", configPath)
	require.NoError(t, err, "failures do not change the exit status without --strict")

	assert.Contains(t, out, "✅ Removed TribeListViewModel from Views/TribeListView.swift\n   Lines 7 to 9 replaced with comment\n")
	assert.Contains(t, out, "❌ Error processing Views/Missing.swift")
	assert.Contains(t, out, "🎉 Done! 1 removed, 1 failed.")

	data, err := os.ReadFile(filepath.Join(dir, "Views", "TribeListView.swift"))
	require.NoError(t, err)
	got := string(data)
	assert.NotContains(t, got, "class TribeListViewModel")
	assert.Contains(t, got, "// Note: TribeListViewModel has been moved to Architecture/ViewModels/TribeListViewModel.swift\n")
	assert.True(t, strings.HasSuffix(got, "\n#Preview { TribeListView() }\n"))
}

func TestRunStrict(t *testing.T) {
	_, configPath := setupWorkspace(t)

	_, err := execute(t, "--config", configPath, "--strict")
	assert.ErrorIs(t, err, errDocumentsFailed)
}

func TestRunDryRunJSON(t *testing.T) {
	dir, configPath := setupWorkspace(t)

	out, err := execute(t, "--config", configPath, "--dry-run", "--diff", "--format", "json")
	require.NoError(t, err)

	var rep struct {
		DryRun   bool `json:"dry_run"`
		Outcomes []struct {
			Kind    string `json:"kind"`
			Written bool   `json:"written"`
			Preview string `json:"preview"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.DryRun)
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, "removed", rep.Outcomes[0].Kind)
	assert.False(t, rep.Outcomes[0].Written)
	assert.Contains(t, rep.Outcomes[0].Preview, "-class TribeListViewModel")
	assert.Equal(t, "io_failure", rep.Outcomes[1].Kind)

	data, err := os.ReadFile(filepath.Join(dir, "Views", "TribeListView.swift"))
	require.NoError(t, err)
	assert.Equal(t, viewSource, string(data), "dry run must not write")
}

func TestRunFlagErrors(t *testing.T) {
	_, configPath := setupWorkspace(t)

	_, err := execute(t, "--config", configPath, "--diff")
	assert.ErrorContains(t, err, "require --dry-run")

	_, err = execute(t, "--config", configPath, "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "--config", configPath, "--dry-run", "--diff", "--highlight")
	assert.Error(t, err)

	for _, preview := range []string{"--diff", "--highlight"} {
		out, err := execute(t, "--config", configPath, "--dry-run", preview, "--context=-2")
		assert.ErrorContains(t, err, "--context must not be negative", preview)
		assert.Empty(t, out, "nothing is reported for %s", preview)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "excise.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("targets:\n  - path: a.swift\n    hint: 0\n"), 0o644))

	_, err := execute(t, "--config", configPath, "--root", dir)
	assert.ErrorContains(t, err, "invalid config")
}

func TestTargetsCommand(t *testing.T) {
	_, configPath := setupWorkspace(t)

	out, err := execute(t, "targets", "--config", configPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[1], "TribeListViewModel")
	assert.Contains(t, lines[1], "Views/TribeListView.swift")
	assert.Contains(t, lines[2], "MissingViewModel")
}

func TestInitCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "excise.yaml")

	out, err := execute(t, "init", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = execute(t, "init", "--config", configPath)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--config", configPath, "--force")
	assert.NoError(t, err)
}
