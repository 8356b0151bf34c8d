package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dkoosis/foreport/pkg/results"
)

// Text renders a fixed-format plain-text summary.
type Text struct{}

// NewText creates a plain-text summary renderer.
func NewText() *Text {
	return &Text{}
}

func (t *Text) Name() string { return "text" }

// Render formats totals followed by one line per failed test with an error.
func (t *Text) Render(m *results.Model) (string, error) {
	s := m.Stats
	var sb strings.Builder

	sb.WriteString("Test Results Summary\n")
	sb.WriteString("====================\n")
	fmt.Fprintf(&sb, "Report Files: %d\n", len(m.Files))
	fmt.Fprintf(&sb, "Total Tests: %d\n", s.Tests)
	fmt.Fprintf(&sb, "Passed: %d\n", s.Passes)
	fmt.Fprintf(&sb, "Failed: %d\n", s.Failures)
	fmt.Fprintf(&sb, "Pending: %d\n", s.Pending)
	fmt.Fprintf(&sb, "Other: %d\n", s.Other)
	fmt.Fprintf(&sb, "Pass Rate: %.2f%%\n", s.PassRate())
	fmt.Fprintf(&sb, "Duration: %ss\n", sigFigs(float64(s.DurationMs)/1000, 3))
	if s.Start != "" || s.End != "" {
		fmt.Fprintf(&sb, "Started: %s\n", s.Start)
		fmt.Fprintf(&sb, "Ended: %s\n", s.End)
	}
	fmt.Fprintf(&sb, "Generated: %s\n", isoTime(m.GeneratedAt))

	sb.WriteString("\nFailed Tests:\n")
	for _, r := range m.Records {
		if r.Error == nil {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", r.FullTitle, r.Error.Message)
	}
	return sb.String(), nil
}

// sigFigs formats v rounded to n significant digits without exponent notation.
func sigFigs(v float64, n int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	magnitude := int(math.Floor(math.Log10(math.Abs(v))))
	scale := math.Pow(10, float64(n-1-magnitude))
	rounded := math.Round(v*scale) / scale
	// Rounding can carry into the next decade (9.996 -> 10.0).
	if math.Abs(rounded) >= math.Pow(10, float64(magnitude+1)) {
		magnitude++
	}

	decimals := n - 1 - magnitude
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}
