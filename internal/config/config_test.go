package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/foreport/pkg/bugs"
)

// memFs returns an empty filesystem with the user config dir pinned to /xdg.
func memFs(t *testing.T) afero.Fs {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	return afero.NewMemMapFs()
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	fs := memFs(t)
	require.NoError(t, afero.WriteFile(fs, FileName, []byte("theme: mono\n"), 0o600))

	assert.Equal(t, FileName, getConfigPath(fs))
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	fs := memFs(t)
	configPath := filepath.Join("/xdg", "foreport", FileName)
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("theme: orca\n"), 0o600))

	assert.Equal(t, configPath, getConfigPath(fs))
}

func TestGetConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	assert.Equal(t, "", getConfigPath(memFs(t)))
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, path, err := Load(memFs(t), "")
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Equal(t, DefaultReportsDir, cfg.ReportsDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultScreenshotsDir, cfg.ScreenshotsDir)
	assert.Equal(t, DefaultHTMLName, cfg.HTMLName)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Positive(t, cfg.Parallel)
	assert.False(t, cfg.Debug)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	fs := memFs(t)
	yml := `reports_dir: out/reports
output_dir: out/results
title: Sprint 5
parallel: 2
debug: true
classification:
  rules:
    - keywords: [CHECKOUT]
      priority: high
      severity: blocker
  default:
    priority: low
    severity: minor
`
	require.NoError(t, afero.WriteFile(fs, FileName, []byte(yml), 0o600))

	cfg, path, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, FileName, path)
	assert.Equal(t, "out/reports", cfg.ReportsDir)
	assert.Equal(t, "out/results", cfg.OutputDir)
	assert.Equal(t, DefaultScreenshotsDir, cfg.ScreenshotsDir)
	assert.Equal(t, "Sprint 5", cfg.Title)
	assert.Equal(t, 2, cfg.Parallel)
	assert.True(t, cfg.Debug)

	c := cfg.Classifier()
	assert.Equal(t, bugs.Rating{Priority: "High", Severity: "Blocker"}, c.Classify("CHECKOUT flow"))
	assert.Equal(t, bugs.Rating{Priority: "Low", Severity: "Minor"}, c.Classify("GUI Checklist (SECURITY)"))
}

func TestLoad_ExplicitPath(t *testing.T) {
	fs := memFs(t)
	p := filepath.Join("ci", "ci.yaml")
	require.NoError(t, afero.WriteFile(fs, p, []byte("html_name: report\n"), 0o600))

	cfg, path, err := Load(fs, p)
	require.NoError(t, err)
	assert.Equal(t, p, path)
	assert.Equal(t, "report", cfg.HTMLName)
}

func TestLoad_Errors(t *testing.T) {
	fs := memFs(t)

	_, _, err := Load(fs, "missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("parallel: [1, 2\n"), 0o600))
	cfg, _, err := Load(fs, "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
	assert.Equal(t, DefaultReportsDir, cfg.ReportsDir)
}

func TestClassifier_BuiltinWhenUnset(t *testing.T) {
	cfg := Default()
	assert.Equal(t, bugs.DefaultClassifier(), cfg.Classifier())

	cfg.Classification = &Classification{}
	assert.Equal(t, bugs.DefaultClassifier(), cfg.Classifier())
}

func TestClassifier_RulesKeepBuiltinDefault(t *testing.T) {
	cfg := Default()
	cfg.Classification = &Classification{Rules: []bugs.Rule{
		{Keywords: []string{"Cart"}, Rating: bugs.Rating{Priority: "low", Severity: "minor"}},
	}}
	c := cfg.Classifier()
	assert.Equal(t, bugs.Rating{Priority: "Low", Severity: "Minor"}, c.Classify("Cart Functionality Tests"))
	assert.Equal(t, bugs.DefaultClassifier().Default, c.Classify("Checkout"))
}
