package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/dkoosis/foreport/internal/config"
	"github.com/dkoosis/foreport/internal/locate"
	"github.com/dkoosis/foreport/internal/pipeline"
	"github.com/dkoosis/foreport/pkg/render"
)

// commandFlags returns fresh flag definitions for one command.
func commandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file (default: ./.foreport.yaml, then the user config dir)",
			EnvVars: []string{"FOREPORT_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "reports-dir",
			Aliases: []string{"r"},
			Usage:   "Directory holding the per-spec JSON reports (default: " + config.DefaultReportsDir + ")",
			EnvVars: []string{"FOREPORT_REPORTS_DIR"},
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "Directory to write outputs to (default: " + config.DefaultOutputDir + ")",
			EnvVars: []string{"FOREPORT_OUTPUT_DIR"},
		},
		&cli.StringFlag{
			Name:    "screenshots-dir",
			Usage:   "Root used when naming failure screenshots (default: " + config.DefaultScreenshotsDir + ")",
			EnvVars: []string{"FOREPORT_SCREENSHOTS_DIR"},
		},
		&cli.StringFlag{
			Name:    "html-name",
			Usage:   "File name of the HTML page, without extension (default: " + config.DefaultHTMLName + ")",
			EnvVars: []string{"FOREPORT_HTML_NAME"},
		},
		&cli.StringFlag{
			Name:    "title",
			Usage:   "Heading for the HTML page and the bug report",
			EnvVars: []string{"FOREPORT_TITLE"},
		},
		&cli.StringFlag{
			Name:    "theme",
			Usage:   "Console theme: default, orca, mono",
			EnvVars: []string{"FOREPORT_THEME"},
		},
		&cli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"j"},
			Usage:   "Report files read concurrently (default: GOMAXPROCS)",
			EnvVars: []string{"FOREPORT_PARALLEL"},
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "Disable colored console output",
			EnvVars: []string{"FOREPORT_NO_COLOR", "NO_COLOR"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Enable debug logging",
			EnvVars: []string{"FOREPORT_DEBUG"},
		},
	}
}

// action holds the I/O shared by every command.
type action struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

type operation func(*pipeline.Pipeline, context.Context) (*pipeline.Summary, error)

func (a *action) combine(c *cli.Context) error {
	return a.execute(c, (*pipeline.Pipeline).Combine)
}

func (a *action) generate(c *cli.Context) error {
	return a.execute(c, (*pipeline.Pipeline).Generate)
}

func (a *action) bugs(c *cli.Context) error {
	return a.execute(c, (*pipeline.Pipeline).ExtractFailures)
}

func (a *action) html(c *cli.Context) error {
	return a.execute(c, (*pipeline.Pipeline).HTML)
}

func (a *action) execute(c *cli.Context, op operation) error {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "foreport"})

	cfg, err := a.settings(c, logger)
	if err != nil {
		return err
	}
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	var opts []pipeline.Option
	if isTTYWriter(a.stderr) && !cfg.Debug {
		opts = append(opts, pipeline.WithProgress(pipeline.BarProgressor(a.stderr)))
	}
	p := pipeline.New(a.fs, pipeline.Options{
		ReportsDir:     cfg.ReportsDir,
		OutputDir:      cfg.OutputDir,
		ScreenshotsDir: cfg.ScreenshotsDir,
		HTMLName:       cfg.HTMLName,
		Title:          cfg.Title,
		Parallel:       cfg.Parallel,
		Classifier:     cfg.Classifier(),
	}, logger, opts...)

	sum, err := op(p, c.Context)
	if errors.Is(err, locate.ErrNoInputFiles) {
		return cli.Exit("No JSON reports found!", 1)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("foreport: %v", err), 1)
	}

	a.report(c, cfg, sum)
	return nil
}

// settings resolves flags and environment over the config file over defaults.
func (a *action) settings(c *cli.Context, logger *log.Logger) (*config.Config, error) {
	explicit := c.String("config")
	cfg, path, err := config.Load(a.fs, explicit)
	if err != nil {
		if explicit != "" {
			return nil, cli.Exit(fmt.Sprintf("foreport: %v", err), 1)
		}
		logger.Warn("ignoring config file", "err", err)
	} else if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	if c.IsSet("reports-dir") {
		cfg.ReportsDir = c.String("reports-dir")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("screenshots-dir") {
		cfg.ScreenshotsDir = c.String("screenshots-dir")
	}
	if c.IsSet("html-name") {
		cfg.HTMLName = c.String("html-name")
	}
	if c.IsSet("title") {
		cfg.Title = c.String("title")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("parallel") && c.Int("parallel") > 0 {
		cfg.Parallel = c.Int("parallel")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	return cfg, nil
}

// report prints the console summary and which outputs were written.
func (a *action) report(c *cli.Context, cfg *config.Config, sum *pipeline.Summary) {
	theme := render.ThemeByName(cfg.Theme)
	if c.Bool("no-color") || !isTTYWriter(a.stdout) {
		theme = render.MonoTheme()
	}
	console := render.NewTerminal(theme, termWidth(a.stdout))

	if sum.Model != nil && len(sum.Model.Files) > 0 {
		if out, err := console.Render(sum.Model); err == nil {
			fmt.Fprint(a.stdout, out)
			fmt.Fprintln(a.stdout)
		}
	}
	if len(sum.Written) == 0 && len(sum.Failed) == 0 {
		fmt.Fprintln(a.stdout, "No outputs written.")
		return
	}
	fmt.Fprint(a.stdout, console.Outcome(sum.Written, sum.Failed))
}
