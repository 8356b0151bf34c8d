package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/foreport/pkg/results"
)

// Theme defines colors and icons for the console summary.
type Theme struct {
	Name    string
	Heading lipgloss.Style
	Passed  lipgloss.Style
	Failed  lipgloss.Style
	Pending lipgloss.Style
	Muted   lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons maps test states to glyphs.
type ThemeIcons struct {
	Passed  string
	Failed  string
	Pending string
	Other   string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Passed:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Icons:   ThemeIcons{Passed: "✓", Failed: "✗", Pending: "○", Other: "·"},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Passed:  lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Icons:   ThemeIcons{Passed: "✓", Failed: "✗", Pending: "!", Other: "·"},
	}
}

// MonoTheme returns a monochrome, ASCII-only theme.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Heading: lipgloss.NewStyle(),
		Passed:  lipgloss.NewStyle(),
		Failed:  lipgloss.NewStyle(),
		Pending: lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Icons:   ThemeIcons{Passed: "+", Failed: "x", Pending: "-", Other: "*"},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// forState returns the icon and style for a test state.
func (t Theme) forState(s results.State) (string, lipgloss.Style) {
	switch s {
	case results.StatePassed:
		return t.Icons.Passed, t.Passed
	case results.StateFailed:
		return t.Icons.Failed, t.Failed
	case results.StatePending:
		return t.Icons.Pending, t.Pending
	default:
		return t.Icons.Other, t.Muted
	}
}
