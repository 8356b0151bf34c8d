// Package bugs turns failed test records into numbered bug entries with a
// priority and severity rating.
package bugs

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/foreport/pkg/results"
)

// Rating is the priority and severity attached to a bug.
type Rating struct {
	Priority string `json:"priority" yaml:"priority"`
	Severity string `json:"severity" yaml:"severity"`
}

// Classifier assigns a rating from a suite title.
type Classifier interface {
	Classify(suite string) Rating
}

// Rule maps any of its keywords to a rating.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Rating   `yaml:",inline"`
}

// KeywordClassifier rates a suite by substring match. The first rule with a
// matching keyword wins; Default applies when nothing matches.
type KeywordClassifier struct {
	Rules   []Rule
	Default Rating
}

// Classify implements Classifier. Matching is case-sensitive, so suite
// naming conventions like "GUI Checklist 1.2 - (SECURITY)" drive the result.
func (k KeywordClassifier) Classify(suite string) Rating {
	for _, rule := range k.Rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(suite, kw) {
				return rule.Rating
			}
		}
	}
	return k.Default
}

// DefaultClassifier returns the built-in keyword table.
func DefaultClassifier() KeywordClassifier {
	return KeywordClassifier{
		Rules: []Rule{
			{Keywords: []string{"SECURITY", "ACCESSIBILITY"}, Rating: Rating{Priority: "High", Severity: "Critical"}},
			{Keywords: []string{"PERFORMANCE", "USABILITY"}, Rating: Rating{Priority: "High", Severity: "Major"}},
			{Keywords: []string{"CONTENT", "COLORS"}, Rating: Rating{Priority: "Medium", Severity: "Minor"}},
		},
		Default: Rating{Priority: "Medium", Severity: "Major"},
	}
}

// NormalizeRating title-cases configured labels so "high" reads "High".
func NormalizeRating(r Rating) Rating {
	titler := cases.Title(language.English)
	return Rating{
		Priority: titler.String(strings.TrimSpace(r.Priority)),
		Severity: titler.String(strings.TrimSpace(r.Severity)),
	}
}

// Bug is one failed test with its synthesized identifier.
type Bug struct {
	ID     string             `json:"id"`
	Rating                    // embedded: priority, severity
	Record results.TestRecord `json:"test"`
}

// FormatID renders the 1-based sequence number n as BUG-NNN.
func FormatID(n int) string {
	return fmt.Sprintf("BUG-%03d", n)
}

// Extract filters failed records and numbers them in list order.
// A nil classifier uses DefaultClassifier.
func Extract(records []results.TestRecord, c Classifier) []Bug {
	if c == nil {
		c = DefaultClassifier()
	}
	var out []Bug
	for _, r := range records {
		if r.State != results.StateFailed {
			continue
		}
		out = append(out, Bug{
			ID:     FormatID(len(out) + 1),
			Rating: c.Classify(classifyKey(r)),
			Record: r,
		})
	}
	return out
}

// classifyKey is the full suite path so keywords on an outer describe block
// still rate tests in nested blocks.
func classifyKey(r results.TestRecord) string {
	if len(r.SuitePath) > 0 {
		return strings.Join(r.SuitePath, " ")
	}
	return r.SuiteTitle
}

// SuiteFailures lists the bugs raised by one suite.
type SuiteFailures struct {
	Suite string
	Bugs  []Bug
}

// GroupBySuite groups bugs by suite title in first-seen order.
func GroupBySuite(bugs []Bug) []SuiteFailures {
	index := make(map[string]int)
	var groups []SuiteFailures
	for _, b := range bugs {
		i, ok := index[b.Record.SuiteTitle]
		if !ok {
			i = len(groups)
			index[b.Record.SuiteTitle] = i
			groups = append(groups, SuiteFailures{Suite: b.Record.SuiteTitle})
		}
		groups[i].Bugs = append(groups[i].Bugs, b)
	}
	return groups
}
