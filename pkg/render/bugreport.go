package render

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dkoosis/foreport/pkg/bugs"
	"github.com/dkoosis/foreport/pkg/results"
)

// Placeholders used when a failed test carries no detail.
const (
	noCodePlaceholder    = "Test code not available"
	noMessagePlaceholder = "Test failed without specific error message"
	expectedResult       = "Test should pass according to the GUI checklist requirement"
)

// BugReportConfig configures the Markdown bug report.
type BugReportConfig struct {
	Title          string          // heading (default: "COMPREHENSIVE BUG REPORT")
	ScreenshotsDir string          // root of the screenshot naming convention
	Classifier     bugs.Classifier // default: bugs.DefaultClassifier
}

// BugReport renders failed tests as a Markdown bug report.
type BugReport struct {
	cfg BugReportConfig
}

// NewBugReport creates a Markdown bug report renderer.
func NewBugReport(cfg BugReportConfig) *BugReport {
	if cfg.Title == "" {
		cfg.Title = "COMPREHENSIVE BUG REPORT"
	}
	if cfg.Classifier == nil {
		cfg.Classifier = bugs.DefaultClassifier()
	}
	return &BugReport{cfg: cfg}
}

func (b *BugReport) Name() string { return "bug-report" }

// Render writes the heading, executive summary, one section per bug and the
// per-suite statistics.
func (b *BugReport) Render(m *results.Model) (string, error) {
	found := bugs.Extract(m.Records, b.cfg.Classifier)
	suites := m.Suites()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", b.cfg.Title)
	fmt.Fprintf(&sb, "**Generated:** %s\n", isoTime(m.GeneratedAt))
	fmt.Fprintf(&sb, "**Total Report Files Processed:** %d\n", len(m.Files))
	if len(m.Skipped) > 0 {
		fmt.Fprintf(&sb, "**Report Files Skipped:** %d\n", len(m.Skipped))
	}
	fmt.Fprintf(&sb, "**Test Suites Found:** %d\n", len(suites))
	fmt.Fprintf(&sb, "**Total Tests:** %d\n", m.Stats.Tests)
	fmt.Fprintf(&sb, "**Total Failures:** %d\n", m.Stats.Failures)
	sb.WriteString("\n---\n\n")

	sb.WriteString("## EXECUTIVE SUMMARY\n\n")
	sb.WriteString("**Test Suites Analyzed:**\n")
	if len(suites) == 0 {
		sb.WriteString("- (none)\n")
	}
	for _, s := range suites {
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	sb.WriteString("\n**Overall Results:**\n")
	fmt.Fprintf(&sb, "- Total Tests: %d\n", m.Stats.Tests)
	fmt.Fprintf(&sb, "- Total Failures: %d\n", m.Stats.Failures)
	fmt.Fprintf(&sb, "- Pass Rate: %.2f%%\n", m.Stats.PassRate())
	sb.WriteString("\n---\n\n")

	sb.WriteString("## DETAILED BUG REPORTS\n\n")
	if len(found) == 0 {
		sb.WriteString("No failed tests were found.\n\n")
	}
	for _, bug := range found {
		b.writeBug(&sb, bug)
	}

	sb.WriteString("## TEST SUITE STATISTICS\n\n")
	groups := bugs.GroupBySuite(found)
	for _, g := range groups {
		fmt.Fprintf(&sb, "### %s\n", g.Suite)
		fmt.Fprintf(&sb, "- **Total Failures:** %d\n", len(g.Bugs))
		sb.WriteString("- **Failed Tests:**\n")
		for _, bug := range g.Bugs {
			fmt.Fprintf(&sb, "  - %s\n", bug.Record.Title)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(suiteTable(groups))
	return sb.String(), nil
}

func (b *BugReport) writeBug(sb *strings.Builder, bug bugs.Bug) {
	r := bug.Record

	code := r.Code
	if code == "" {
		code = noCodePlaceholder
	}
	actual := r.ErrorMessage()
	if actual == "" {
		actual = noMessagePlaceholder
	}
	technicalMessage, stack := "No error message", "No stack trace"
	if r.Error != nil {
		if r.Error.Message != "" {
			technicalMessage = r.Error.Message
		}
		if r.Error.Stack != "" {
			stack = r.Error.Stack
		}
	}

	fmt.Fprintf(sb, "### %s\n", bug.ID)
	sb.WriteString("**Summary**  \n")
	fmt.Fprintf(sb, "%s\n\n", r.Title)

	sb.WriteString("**Steps to Reproduce**  \n")
	sb.WriteString("1. Navigate to the application page\n")
	fmt.Fprintf(sb, "2. Execute test: \"%s\"\n", r.Title)
	sb.WriteString("3. Observe the failure condition\n")
	fmt.Fprintf(sb, "```javascript\n%s\n```\n\n", code)

	sb.WriteString("**Actual Result vs Expected Result**  \n")
	fmt.Fprintf(sb, "- **Actual Result:** %s\n", actual)
	fmt.Fprintf(sb, "- **Expected Result:** %s\n\n", expectedResult)

	sb.WriteString("**Screenshot**  \n")
	fmt.Fprintf(sb, "Screenshot available in: `%s`\n\n", b.ScreenshotPath(r))

	sb.WriteString("**Priority and Severity**  \n")
	fmt.Fprintf(sb, "- **Priority:** %s\n", bug.Priority)
	fmt.Fprintf(sb, "- **Severity:** %s\n", bug.Severity)
	fmt.Fprintf(sb, "- **Test Duration:** %dms\n\n", r.DurationMs)

	sb.WriteString("**Affected Feature / Version**  \n")
	fmt.Fprintf(sb, "- **Feature:** %s\n", r.SuiteTitle)
	fmt.Fprintf(sb, "- **Test File:** %s\n", r.SpecFile)
	fmt.Fprintf(sb, "- **Test UUID:** %s\n", r.UUID)
	fmt.Fprintf(sb, "- **Report File:** %s\n\n", r.SourceFile)

	sb.WriteString("**Technical Details**  \n")
	fmt.Fprintf(sb, "```\nError Message: %s\nError Stack: %s\n```\n\n", technicalMessage, stack)
	sb.WriteString("---\n\n")
}

// ScreenshotPath builds the conventional screenshot location for a failed
// test. The file is not checked for existence.
func (b *BugReport) ScreenshotPath(r results.TestRecord) string {
	dir := r.SpecFile
	if dir == "" {
		dir = path.Base(r.SourceFile)
	}
	return path.Join(b.cfg.ScreenshotsDir, dir, r.FullTitle+" (failed).png")
}

// suiteTable renders a Markdown table of failures per suite.
func suiteTable(groups []bugs.SuiteFailures) string {
	buf := new(bytes.Buffer)
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"Suite", "Failures", "Bug IDs"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	if len(groups) == 0 {
		table.Append([]string{"(none)", "0", "-"})
		table.Render()
		return buf.String()
	}

	for _, g := range groups {
		ids := make([]string, 0, len(g.Bugs))
		for _, bug := range g.Bugs {
			ids = append(ids, bug.ID)
		}
		table.Append([]string{strings.ReplaceAll(g.Suite, "|", `\|`), strconv.Itoa(len(g.Bugs)), strings.Join(ids, ", ")})
	}
	table.Render()
	return buf.String()
}
