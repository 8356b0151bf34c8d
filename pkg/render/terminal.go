package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/foreport/pkg/results"
)

// Terminal renders the operator-facing console summary via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

func (t *Terminal) Name() string { return "terminal" }

// Render formats totals and the failed tests for terminal display.
func (t *Terminal) Render(m *results.Model) (string, error) {
	s := m.Stats
	var sb strings.Builder

	sb.WriteString(t.theme.Heading.Render(fmt.Sprintf("%d tests across %d report file(s)", s.Tests, len(m.Files))))
	sb.WriteString("\n")
	if len(m.Skipped) > 0 {
		sb.WriteString(t.theme.Pending.Render(fmt.Sprintf("  %d file(s) skipped as malformed", len(m.Skipped))))
		sb.WriteString("\n")
	}

	metrics := []struct {
		state results.State
		label string
		value int
	}{
		{results.StatePassed, "Passed", s.Passes},
		{results.StateFailed, "Failed", s.Failures},
		{results.StatePending, "Pending", s.Pending},
		{"", "Other", s.Other},
	}
	for _, mt := range metrics {
		icon, style := t.theme.forState(mt.state)
		sb.WriteString("  ")
		sb.WriteString(style.Render(fmt.Sprintf("%s %s %d", icon, padRight(mt.label+":", 9), mt.value)))
		sb.WriteString("\n")
	}
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("  pass rate %.2f%%  ·  %ss", s.PassRate(), sigFigs(float64(s.DurationMs)/1000, 3))))
	sb.WriteString("\n")

	failed := m.Failed()
	if len(failed) == 0 {
		return sb.String(), nil
	}

	sb.WriteString("\n")
	sb.WriteString(t.theme.Heading.Render(fmt.Sprintf("Failures (%d)", len(failed))))
	sb.WriteString("\n")
	nameWidth := t.width - 4
	for _, r := range failed {
		icon, style := t.theme.forState(r.State)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(truncate(r.FullTitle, nameWidth))
		if msg := r.ErrorMessage(); msg != "" {
			sb.WriteString("\n    ")
			sb.WriteString(t.theme.Muted.Render(truncate(firstLine(msg), t.width-4)))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Outcome summarizes which outputs were written and which renderers failed.
func (t *Terminal) Outcome(written []string, failed []*RenderError) string {
	var sb strings.Builder
	for _, w := range written {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Passed.Render(t.theme.Icons.Passed))
		sb.WriteString(" ")
		sb.WriteString(w)
		sb.WriteString("\n")
	}
	for _, f := range failed {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Failed.Render(t.theme.Icons.Failed + " " + f.Renderer))
		sb.WriteString(t.theme.Muted.Render(": " + f.Err.Error()))
		sb.WriteString("\n")
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate shortens s to width display cells, ending with "...".
func truncate(s string, width int) string {
	if width <= 3 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
