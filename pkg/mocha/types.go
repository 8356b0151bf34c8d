// Package mocha decodes mocha-family JSON report files and normalizes them
// into the results model.
//
// Two layouts are recognized:
//
//	flat    : mocha's built-in "json" reporter: {stats, tests[], pending[], failures[], passes[]}
//	nested  : mochawesome: {stats, results[]{suites[]{title, tests[], suites[]}}, meta}
//
// Every field is optional. Missing numbers decode as 0, missing strings as "",
// missing arrays as empty.
package mocha

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/dkoosis/foreport/internal/detect"
)

// Document is a tagged union over the two report layouts.
// Exactly one of Flat and Nested is set, matching Shape.
type Document struct {
	Shape  detect.Shape
	Flat   *FlatReport
	Nested *NestedReport
}

// Stats is the stats block both layouts share.
type Stats struct {
	Suites   number `json:"suites"`
	Tests    number `json:"tests"`
	Passes   number `json:"passes"`
	Pending  number `json:"pending"`
	Failures number `json:"failures"`
	Duration number `json:"duration"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// FlatReport is the mocha json reporter layout.
type FlatReport struct {
	Stats    *Stats     `json:"stats"`
	Tests    []FlatTest `json:"tests"`
	Pending  []FlatTest `json:"pending"`
	Failures []FlatTest `json:"failures"`
	Passes   []FlatTest `json:"passes"`
	Meta     *Meta      `json:"meta"`
}

// FlatTest is one entry of a flat report's test arrays.
type FlatTest struct {
	Title     string    `json:"title"`
	FullTitle string    `json:"fullTitle"`
	File      string    `json:"file"`
	State     string    `json:"state"`
	Duration  number    `json:"duration"`
	Pending   bool      `json:"pending"`
	Err       *RawError `json:"err"`
}

// NestedReport is the mochawesome layout.
type NestedReport struct {
	Stats   *Stats   `json:"stats"`
	Results []Result `json:"results"`
	Meta    *Meta    `json:"meta"`
}

// Result is one spec file's root suite in a mochawesome report.
type Result struct {
	Title    string  `json:"title"`
	File     string  `json:"file"`
	FullFile string  `json:"fullFile"`
	Tests    []Test  `json:"tests"`
	Suites   []Suite `json:"suites"`
}

// Suite is a describe block; suites nest.
type Suite struct {
	Title    string  `json:"title"`
	File     string  `json:"file"`
	FullFile string  `json:"fullFile"`
	Tests    []Test  `json:"tests"`
	Suites   []Suite `json:"suites"`
}

// Test is one it block in a mochawesome report.
type Test struct {
	Title     string    `json:"title"`
	FullTitle string    `json:"fullTitle"`
	State     string    `json:"state"`
	Duration  number    `json:"duration"`
	Pending   bool      `json:"pending"`
	Skipped   bool      `json:"skipped"`
	Code      string    `json:"code"`
	UUID      string    `json:"uuid"`
	Err       *RawError `json:"err"`
}

// RawError is a test's err object. mocha writes "stack", mochawesome "estack".
type RawError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
	EStack  string `json:"estack"`
	Diff    string `json:"diff"`
}

func (e *RawError) empty() bool {
	return e == nil || (e.Message == "" && e.Stack == "" && e.EStack == "")
}

// Meta carries reporter versions.
type Meta struct {
	Mocha       versioned `json:"mocha"`
	Mochawesome versioned `json:"mochawesome"`
	Marge       versioned `json:"marge"`
}

type versioned struct {
	Version string `json:"version"`
}

// number decodes any JSON number, a numeric string, or null. Anything
// else decodes as zero instead of failing the whole file.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = number(f)
			return nil
		}
	}
	*n = 0
	return nil
}

func (n number) Int() int {
	if n < 0 || math.IsNaN(float64(n)) {
		return 0
	}
	return int(n)
}

func (n number) Millis() int64 {
	if n < 0 || math.IsNaN(float64(n)) {
		return 0
	}
	return int64(math.Round(float64(n)))
}
