package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/foreport/pkg/bugs"
)

// FileName is the name of the configuration file.
const FileName = ".foreport.yaml"

// Defaults for every setting.
const (
	DefaultReportsDir     = "cypress/reports"
	DefaultOutputDir      = "test-results"
	DefaultScreenshotsDir = "cypress/screenshots"
	DefaultHTMLName       = "index"
	DefaultTheme          = "default"
)

// Config represents the application's configuration from .foreport.yaml.
type Config struct {
	ReportsDir     string          `yaml:"reports_dir"`
	OutputDir      string          `yaml:"output_dir"`
	ScreenshotsDir string          `yaml:"screenshots_dir"`
	HTMLName       string          `yaml:"html_name"`
	Title          string          `yaml:"title,omitempty"`
	Theme          string          `yaml:"theme"`
	Parallel       int             `yaml:"parallel"`
	Debug          bool            `yaml:"debug"`
	Classification *Classification `yaml:"classification,omitempty"`
}

// Classification configures how bugs are rated.
type Classification struct {
	Rules   []bugs.Rule  `yaml:"rules"`
	Default *bugs.Rating `yaml:"default,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ReportsDir:     DefaultReportsDir,
		OutputDir:      DefaultOutputDir,
		ScreenshotsDir: DefaultScreenshotsDir,
		HTMLName:       DefaultHTMLName,
		Theme:          DefaultTheme,
		Parallel:       runtime.GOMAXPROCS(0),
	}
}

// Load reads the config file at path on fs, or the discovered one when path
// is empty, and merges it onto the defaults. The returned path is "" when no
// file was used. A missing explicit path is an error; a missing discovered
// file is not.
func Load(fs afero.Fs, path string) (*Config, string, error) {
	cfg := Default()
	if path == "" {
		path = getConfigPath(fs)
		if path == "" {
			return cfg, "", nil
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, "", fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(&fileCfg)
	return cfg, path, nil
}

// merge copies every non-zero setting of other onto c.
func (c *Config) merge(other *Config) {
	if other.ReportsDir != "" {
		c.ReportsDir = other.ReportsDir
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.ScreenshotsDir != "" {
		c.ScreenshotsDir = other.ScreenshotsDir
	}
	if other.HTMLName != "" {
		c.HTMLName = other.HTMLName
	}
	if other.Title != "" {
		c.Title = other.Title
	}
	if other.Theme != "" {
		c.Theme = other.Theme
	}
	if other.Parallel > 0 {
		c.Parallel = other.Parallel
	}
	c.Debug = c.Debug || other.Debug
	if other.Classification != nil {
		c.Classification = other.Classification
	}
}

// Classifier builds the bug classifier. Without a classification block the
// built-in keyword table is used.
func (c *Config) Classifier() bugs.Classifier {
	builtin := bugs.DefaultClassifier()
	if c.Classification == nil || (len(c.Classification.Rules) == 0 && c.Classification.Default == nil) {
		return builtin
	}

	k := bugs.KeywordClassifier{Default: builtin.Default}
	if c.Classification.Default != nil {
		k.Default = bugs.NormalizeRating(*c.Classification.Default)
	}
	for _, r := range c.Classification.Rules {
		k.Rules = append(k.Rules, bugs.Rule{
			Keywords: r.Keywords,
			Rating:   bugs.NormalizeRating(r.Rating),
		})
	}
	return k
}

// getConfigPath checks the working directory first, then the user config dir.
func getConfigPath(fs afero.Fs) string {
	if _, err := fs.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "foreport", FileName)
	if _, err := fs.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
