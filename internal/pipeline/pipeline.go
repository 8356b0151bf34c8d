// Package pipeline wires the locator, loader, aggregator and renderers into
// the four report operations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/dkoosis/foreport/internal/locate"
	"github.com/dkoosis/foreport/pkg/bugs"
	"github.com/dkoosis/foreport/pkg/render"
	"github.com/dkoosis/foreport/pkg/results"
)

// CombinedReportName is the fixed-name copy of the JSON dump written by
// Combine next to the timestamped one.
const CombinedReportName = "combined-report.json"

// Options configures a Pipeline.
type Options struct {
	ReportsDir     string
	OutputDir      string
	ScreenshotsDir string
	HTMLName       string // without extension
	Title          string // HTML and bug report heading; "" keeps each renderer's default
	Parallel       int
	Classifier     bugs.Classifier
}

// Summary reports what an operation produced.
type Summary struct {
	Written []string
	Failed  []*render.RenderError
	Model   *results.Model
}

// Pipeline runs report operations against a filesystem.
type Pipeline struct {
	fs       afero.Fs
	opts     Options
	logger   *log.Logger
	now      func() time.Time
	runID    func() string
	progress Progressor
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithProgress reports file-loading progress to pr.
func WithProgress(pr Progressor) Option {
	return func(p *Pipeline) { p.progress = pr }
}

// WithRunID overrides the run identifier generator.
func WithRunID(gen func() string) Option {
	return func(p *Pipeline) { p.runID = gen }
}

// New creates a pipeline. A nil logger discards output.
func New(fs afero.Fs, opts Options, logger *log.Logger, options ...Option) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.HTMLName == "" {
		opts.HTMLName = "index"
	}
	p := &Pipeline{
		fs:       fs,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		runID:    uuid.NewString,
		progress: NoopProgressor(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Combine merges every report into the full set of outputs. Finding no
// report files is an error.
func (p *Pipeline) Combine(ctx context.Context) (*Summary, error) {
	m, stamp, err := p.model(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("merging reports", "files", len(m.Files), "tests", m.Stats.Tests)

	renderers := []render.Renderer{
		render.NewJSON(),
		render.NewText(),
		render.NewCSV(),
		render.NewHTML(render.HTMLConfig{Title: p.opts.Title}),
		p.bugReport(),
		render.NewFailures(p.opts.Classifier),
	}
	names := p.fileNames(stamp)
	names["json"] = append(names["json"], CombinedReportName)
	return p.emit(m, names, renderers)
}

// Generate writes the JSON, text and CSV reports. With no report files it
// logs a warning and writes nothing.
func (p *Pipeline) Generate(ctx context.Context) (*Summary, error) {
	m, stamp, err := p.model(ctx)
	if errors.Is(err, locate.ErrNoInputFiles) {
		p.logger.Warn("no JSON report files found", "dir", p.opts.ReportsDir)
		return &Summary{Model: m}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.emit(m, p.fileNames(stamp), []render.Renderer{
		render.NewJSON(),
		render.NewText(),
		render.NewCSV(),
	})
}

// ExtractFailures writes the Markdown bug report and the failure dump. With
// no report files both are still written, reporting zero failures.
func (p *Pipeline) ExtractFailures(ctx context.Context) (*Summary, error) {
	m, stamp, err := p.model(ctx)
	if errors.Is(err, locate.ErrNoInputFiles) {
		p.logger.Warn("no JSON report files found", "dir", p.opts.ReportsDir)
	} else if err != nil {
		return nil, err
	}
	return p.emit(m, p.fileNames(stamp), []render.Renderer{
		p.bugReport(),
		render.NewFailures(p.opts.Classifier),
	})
}

// HTML writes the static page. With no report files the page shows sample
// rows.
func (p *Pipeline) HTML(ctx context.Context) (*Summary, error) {
	m, stamp, err := p.model(ctx)
	if errors.Is(err, locate.ErrNoInputFiles) {
		p.logger.Warn("no JSON report files found, rendering sample data", "dir", p.opts.ReportsDir)
	} else if err != nil {
		return nil, err
	}
	return p.emit(m, p.fileNames(stamp), []render.Renderer{
		render.NewHTML(render.HTMLConfig{Title: p.opts.Title}),
	})
}

// model locates and loads the reports. On ErrNoInputFiles it still returns
// an empty, stamped model alongside the error.
func (p *Pipeline) model(ctx context.Context) (*results.Model, string, error) {
	now := p.now().UTC()
	m := &results.Model{GeneratedAt: now, RunID: p.runID()}
	stamp := Timestamp(now)

	paths, err := locate.Locate(p.fs, p.opts.ReportsDir)
	if err != nil {
		return m, stamp, err
	}
	p.logger.Info("found report files", "count", len(paths), "dir", p.opts.ReportsDir)
	p.logger.Debug("latest report", "file", locate.Latest(paths))

	loaded, err := load(ctx, p.fs, paths, p.opts.Parallel, p.logger, p.progress)
	if err != nil {
		return nil, "", err
	}
	loaded.GeneratedAt = m.GeneratedAt
	loaded.RunID = m.RunID
	return &loaded, stamp, nil
}

func (p *Pipeline) bugReport() render.Renderer {
	return render.NewBugReport(render.BugReportConfig{
		Title:          p.opts.Title,
		ScreenshotsDir: p.opts.ScreenshotsDir,
		Classifier:     p.opts.Classifier,
	})
}

// fileNames maps each renderer to the files its output is written to.
func (p *Pipeline) fileNames(stamp string) map[string][]string {
	return map[string][]string{
		"json":       {"test-results-" + stamp + ".json"},
		"text":       {"test-summary-" + stamp + ".txt"},
		"csv":        {"test-results-" + stamp + ".csv"},
		"html":       {p.opts.HTMLName + ".html"},
		"bug-report": {"comprehensive-bug-report-" + stamp + ".md"},
		"failures":   {"all-failures-" + stamp + ".json"},
	}
}

// emit runs the renderers and writes each output. Render and write failures
// are collected in the summary; they do not fail the operation.
func (p *Pipeline) emit(m *results.Model, names map[string][]string, renderers []render.Renderer) (*Summary, error) {
	sum := &Summary{Model: m}

	outputs, err := render.RunAll(m, renderers...)
	for _, re := range render.RenderErrors(err) {
		p.logger.Warn("renderer failed", "renderer", re.Renderer, "err", re.Err)
		sum.Failed = append(sum.Failed, re)
	}
	if len(outputs) == 0 {
		return sum, nil
	}

	if err := p.fs.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", p.opts.OutputDir, err)
	}
	for _, o := range outputs {
		for _, name := range names[o.Renderer] {
			path := filepath.Join(p.opts.OutputDir, name)
			if err := afero.WriteFile(p.fs, path, []byte(o.Content), 0o644); err != nil {
				re := &render.RenderError{Renderer: o.Renderer, Err: fmt.Errorf("write %s: %w", path, err)}
				p.logger.Warn("write failed", "renderer", o.Renderer, "err", err)
				sum.Failed = append(sum.Failed, re)
				continue
			}
			p.logger.Debug("wrote output", "renderer", o.Renderer, "path", path)
			sum.Written = append(sum.Written, path)
		}
	}
	return sum, nil
}

// Timestamp renders t as a filename-safe UTC ISO-8601 time with millisecond
// precision, e.g. 2025-08-01T10-05-00-000Z.
func Timestamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}
