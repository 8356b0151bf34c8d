package render

import (
	"strconv"
	"strings"

	"github.com/dkoosis/foreport/pkg/results"
)

const csvHeader = "Test Title,Status,Duration (ms),Error Message\n"

// CSV renders one row per test record for spreadsheet import.
type CSV struct{}

// NewCSV creates a CSV renderer.
func NewCSV() *CSV {
	return &CSV{}
}

func (c *CSV) Name() string { return "csv" }

// Render writes the header and one row per record. String fields are
// always quoted; numeric fields never are.
func (c *CSV) Render(m *results.Model) (string, error) {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	for _, r := range m.Records {
		sb.WriteString(csvQuote(r.FullTitle))
		sb.WriteByte(',')
		sb.WriteString(strings.ToUpper(string(r.State)))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatInt(r.DurationMs, 10))
		sb.WriteByte(',')
		sb.WriteString(csvQuote(r.ErrorMessage()))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// csvQuote wraps s in double quotes and doubles any embedded quote (RFC 4180).
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
