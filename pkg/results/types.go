// Package results holds the normalized test-result model shared by the
// parser, the aggregator and every renderer.
package results

import "time"

// State is the outcome of a single test.
type State string

const (
	StatePassed  State = "passed"
	StateFailed  State = "failed"
	StatePending State = "pending"
)

// IsKnown reports whether s is one of passed, failed or pending.
// Unknown states are kept verbatim and counted as "other".
func (s State) IsKnown() bool {
	switch s {
	case StatePassed, StateFailed, StatePending:
		return true
	}
	return false
}

// TestError carries the failure details of a test.
type TestError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

// TestRecord is the normalized representation of one test execution.
type TestRecord struct {
	SuiteTitle string     `json:"suite"`
	SuitePath  []string   `json:"suitePath,omitempty"`
	Title      string     `json:"title"`
	FullTitle  string     `json:"fullTitle"`
	State      State      `json:"state"`
	DurationMs int64      `json:"duration"`
	Error      *TestError `json:"error,omitempty"`
	Code       string     `json:"code,omitempty"`
	UUID       string     `json:"uuid,omitempty"`
	SpecFile   string     `json:"file,omitempty"`       // spec file the test lives in
	SourceFile string     `json:"reportFile,omitempty"` // report file the record was read from
}

// ErrorMessage returns the failure message, or "" when the record has none.
func (r TestRecord) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// Stats holds aggregate counters. Other absorbs every state that is not
// passed, failed or pending, so Passes+Failures+Pending+Other == Tests.
type Stats struct {
	Suites     int    `json:"suites"`
	Tests      int    `json:"tests"`
	Passes     int    `json:"passes"`
	Pending    int    `json:"pending"`
	Failures   int    `json:"failures"`
	Other      int    `json:"other"`
	DurationMs int64  `json:"duration"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// PassRate returns (tests-failures)/tests*100, or 0 when there are no tests.
func (s Stats) PassRate() float64 {
	if s.Tests == 0 {
		return 0
	}
	return float64(s.Tests-s.Failures) / float64(s.Tests) * 100
}

// Meta carries tool version strings found in the report files.
type Meta struct {
	MochaVersion       string `json:"mochaVersion,omitempty"`
	MochawesomeVersion string `json:"mochawesomeVersion,omitempty"`
	MargeVersion       string `json:"margeVersion,omitempty"`
}

// FileResult is everything one report file contributes to the model.
type FileResult struct {
	Path      string
	Records   []TestRecord
	Increment Stats
	Meta      Meta
}

// Model is the aggregated view over every report file of a run.
type Model struct {
	Stats       Stats        `json:"stats"`
	Records     []TestRecord `json:"results"`
	Meta        Meta         `json:"meta"`
	Files       []string     `json:"files"`
	Skipped     []string     `json:"skippedFiles,omitempty"`
	GeneratedAt time.Time    `json:"-"`
	RunID       string       `json:"-"`
}
