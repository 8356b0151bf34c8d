package render

import (
	"encoding/json"

	"github.com/dkoosis/foreport/pkg/bugs"
	"github.com/dkoosis/foreport/pkg/results"
)

// Failures renders the raw failure dump that accompanies the bug report.
type Failures struct {
	classifier bugs.Classifier
}

// NewFailures creates a failure-dump renderer. A nil classifier uses
// bugs.DefaultClassifier.
func NewFailures(c bugs.Classifier) *Failures {
	if c == nil {
		c = bugs.DefaultClassifier()
	}
	return &Failures{classifier: c}
}

func (f *Failures) Name() string { return "failures" }

type failuresOutput struct {
	GeneratedAt   string     `json:"generatedAt"`
	TotalFiles    int        `json:"totalFiles"`
	SkippedFiles  []string   `json:"skippedFiles,omitempty"`
	TotalTests    int        `json:"totalTests"`
	TotalFailures int        `json:"totalFailures"`
	TestSuites    []string   `json:"testSuites"`
	Failures      []bugs.Bug `json:"failures"`
}

// Render formats the failed tests, numbered and rated, as indented JSON.
func (f *Failures) Render(m *results.Model) (string, error) {
	out := failuresOutput{
		GeneratedAt:   isoTime(m.GeneratedAt),
		TotalFiles:    len(m.Files),
		SkippedFiles:  m.Skipped,
		TotalTests:    m.Stats.Tests,
		TotalFailures: m.Stats.Failures,
		TestSuites:    m.Suites(),
		Failures:      bugs.Extract(m.Records, f.classifier),
	}
	if out.TestSuites == nil {
		out.TestSuites = []string{}
	}
	if out.Failures == nil {
		out.Failures = []bugs.Bug{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
