package render

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/foreport/pkg/results"
)

// SampleProvider supplies placeholder rows for the HTML page when a run has
// no test records, so the page never renders empty.
type SampleProvider interface {
	Samples() []results.TestRecord
}

// SampleFunc adapts a function to SampleProvider.
type SampleFunc func() []results.TestRecord

func (f SampleFunc) Samples() []results.TestRecord { return f() }

// DefaultSamples returns representative storefront test rows.
func DefaultSamples() SampleProvider {
	return SampleFunc(func() []results.TestRecord {
		return []results.TestRecord{
			{SuiteTitle: "Admin Orders List Tests", Title: "displays the orders table", FullTitle: "Admin Orders List Tests displays the orders table", State: results.StatePassed, DurationMs: 1840},
			{SuiteTitle: "Admin Order Details Tests", Title: "shows billing address for each invoice", FullTitle: "Admin Order Details Tests shows billing address for each invoice", State: results.StatePassed, DurationMs: 2210},
			{SuiteTitle: "Cart Functionality Tests", Title: "updates the cart total when quantity changes", FullTitle: "Cart Functionality Tests updates the cart total when quantity changes", State: results.StateFailed, DurationMs: 4075,
				Error: &results.TestError{Message: "AssertionError: expected '$24.00' to equal '$26.00'"}},
			{SuiteTitle: "Checkout Tests", Title: "pays with bank transfer", FullTitle: "Checkout Tests pays with bank transfer", State: results.StatePassed, DurationMs: 3120},
			{SuiteTitle: "Checkout Tests", Title: "pays with gift card", FullTitle: "Checkout Tests pays with gift card", State: results.StatePending},
		}
	})
}

// HTMLConfig contains configuration for the HTML page.
type HTMLConfig struct {
	Title   string         // page title (default: "Test Report")
	Samples SampleProvider // fallback rows (default: DefaultSamples)
}

// HTML renders a single self-contained page with inline styles.
type HTML struct {
	cfg HTMLConfig
}

// NewHTML creates an HTML renderer.
func NewHTML(cfg HTMLConfig) *HTML {
	if cfg.Title == "" {
		cfg.Title = "Test Report"
	}
	if cfg.Samples == nil {
		cfg.Samples = DefaultSamples()
	}
	return &HTML{cfg: cfg}
}

func (h *HTML) Name() string { return "html" }

// htmlData contains all data needed for the page template.
type htmlData struct {
	Title       string
	GeneratedAt string
	Sample      bool
	Stats       results.Stats
	PassRate    string
	Duration    string
	Files       int
	Rows        []htmlRow
}

type htmlRow struct {
	Suite       string
	Title       string
	Status      string
	StatusClass string
	Duration    string
	Error       string
}

// Render builds the page. With zero records it falls back to sample rows and
// labels the page as sample data.
func (h *HTML) Render(m *results.Model) (string, error) {
	data := htmlData{
		Title:       h.cfg.Title,
		GeneratedAt: isoTime(m.GeneratedAt),
		Stats:       m.Stats,
		Files:       len(m.Files),
	}

	records := m.Records
	if len(records) == 0 {
		records = h.cfg.Samples.Samples()
		data.Sample = true
		data.Stats = results.CountStates(records)
		data.Stats.Suites = len((&results.Model{Records: records}).Suites())
	}
	data.PassRate = fmt.Sprintf("%.2f", data.Stats.PassRate())
	data.Duration = sigFigs(float64(data.Stats.DurationMs)/1000, 3) + "s"

	titler := cases.Title(language.English)
	data.Rows = make([]htmlRow, 0, len(records))
	for _, r := range records {
		status := string(r.State)
		if status == "" {
			status = "unknown"
		}
		data.Rows = append(data.Rows, htmlRow{
			Suite:       r.SuiteTitle,
			Title:       r.Title,
			Status:      titler.String(status),
			StatusClass: statusClass(r.State),
			Duration:    fmt.Sprintf("%dms", r.DurationMs),
			Error:       r.ErrorMessage(),
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func statusClass(s results.State) string {
	switch s {
	case results.StatePassed:
		return "passed"
	case results.StateFailed:
		return "failed"
	case results.StatePending:
		return "pending"
	default:
		return "other"
	}
}

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateText))

const htmlTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #1f2933; }
  header { background: #1f2933; color: #fff; padding: 24px 32px; }
  header h1 { margin: 0 0 4px; font-size: 24px; }
  header p { margin: 0; color: #9aa5b1; font-size: 13px; }
  main { padding: 24px 32px; }
  .notice { background: #fff8e1; border: 1px solid #f0c36d; padding: 12px 16px; border-radius: 4px; margin-bottom: 20px; }
  .cards { display: flex; flex-wrap: wrap; gap: 12px; margin-bottom: 24px; }
  .card { background: #fff; border-radius: 6px; padding: 16px 20px; min-width: 120px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  .card .value { font-size: 26px; font-weight: 600; }
  .card .label { font-size: 12px; color: #616e7c; text-transform: uppercase; letter-spacing: .04em; }
  .card.passed .value { color: #2f9e44; }
  .card.failed .value { color: #e03131; }
  .card.pending .value { color: #f08c00; }
  table { width: 100%; border-collapse: collapse; background: #fff; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  th, td { text-align: left; padding: 10px 12px; border-bottom: 1px solid #e4e7eb; font-size: 14px; vertical-align: top; }
  th { background: #f0f2f5; font-weight: 600; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 12px; color: #fff; }
  .badge.passed { background: #2f9e44; }
  .badge.failed { background: #e03131; }
  .badge.pending { background: #f08c00; }
  .badge.other { background: #868e96; }
  .error { color: #c92a2a; font-family: Menlo, Consolas, monospace; font-size: 12px; white-space: pre-wrap; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>Generated {{if .GeneratedAt}}{{.GeneratedAt}}{{else}}(unknown){{end}} &middot; {{.Files}} report file(s)</p>
</header>
<main>
{{- if .Sample}}
  <div class="notice">No test results were found. The rows below are sample data.</div>
{{- end}}
  <section class="cards">
    <div class="card"><div class="value">{{.Stats.Tests}}</div><div class="label">Tests</div></div>
    <div class="card passed"><div class="value">{{.Stats.Passes}}</div><div class="label">Passed</div></div>
    <div class="card failed"><div class="value">{{.Stats.Failures}}</div><div class="label">Failed</div></div>
    <div class="card pending"><div class="value">{{.Stats.Pending}}</div><div class="label">Pending</div></div>
    <div class="card"><div class="value">{{.Stats.Suites}}</div><div class="label">Suites</div></div>
    <div class="card"><div class="value">{{.PassRate}}%</div><div class="label">Pass rate</div></div>
    <div class="card"><div class="value">{{.Duration}}</div><div class="label">Duration</div></div>
  </section>
  <table>
    <thead>
      <tr><th>Suite</th><th>Test</th><th>Status</th><th>Duration</th></tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
        <td>{{.Suite}}</td>
        <td>{{.Title}}{{if .Error}}<div class="error">{{.Error}}</div>{{end}}</td>
        <td><span class="badge {{.StatusClass}}">{{.Status}}</span></td>
        <td>{{.Duration}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
</main>
</body>
</html>
`
