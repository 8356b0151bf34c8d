package bugs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/foreport/pkg/results"
)

func rec(suite, title string, state results.State) results.TestRecord {
	return results.TestRecord{SuiteTitle: suite, Title: title, FullTitle: suite + " " + title, State: state}
}

func TestExtract_AssignsSequentialIDs(t *testing.T) {
	records := []results.TestRecord{
		rec("Cart", "a", results.StateFailed),
		rec("Cart", "b", results.StatePassed),
		rec("Admin", "c", results.StateFailed),
		rec("Admin", "d", results.StatePending),
		rec("Admin", "e", results.StateFailed),
	}

	got := Extract(records, nil)
	require.Len(t, got, 3)

	ids := make([]string, len(got))
	titles := make([]string, len(got))
	for i, b := range got {
		ids[i] = b.ID
		titles[i] = b.Record.Title
	}
	assert.Equal(t, []string{"BUG-001", "BUG-002", "BUG-003"}, ids)
	assert.Equal(t, []string{"a", "c", "e"}, titles)
}

func TestExtract_IsDeterministic(t *testing.T) {
	records := []results.TestRecord{
		rec("SECURITY checks", "x", results.StateFailed),
		rec("Cart", "y", results.StateFailed),
	}
	first := Extract(records, DefaultClassifier())
	second := Extract(records, DefaultClassifier())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("extract not deterministic (-first +second):\n%s", diff)
	}
}

func TestExtract_NoFailures(t *testing.T) {
	assert.Empty(t, Extract([]results.TestRecord{rec("Cart", "a", results.StatePassed)}, nil))
	assert.Empty(t, Extract(nil, nil))
}

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		suite string
		want  Rating
	}{
		{"GUI Checklist 1.1 - BẢO MẬT (SECURITY)", Rating{"High", "Critical"}},
		{"GUI Checklist 1.7 - ACCESSIBILITY", Rating{"High", "Critical"}},
		{"GUI Checklist 1.5 - PERFORMANCE", Rating{"High", "Major"}},
		{"GUI Checklist 1.3 - TÍNH KHẢ DỤNG (USABILITY)", Rating{"High", "Major"}},
		{"GUI Checklist 1.2 - NỘI DUNG (CONTENT)", Rating{"Medium", "Minor"}},
		{"GUI Checklist 1.8 - MÀU SẮC (COLORS)", Rating{"Medium", "Minor"}},
		{"Admin Orders List Tests", Rating{"Medium", "Major"}},
		{"security in lower case", Rating{"Medium", "Major"}},
	}
	c := DefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.suite, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.suite))
		})
	}
}

func TestKeywordClassifier_FirstRuleWins(t *testing.T) {
	c := KeywordClassifier{
		Rules: []Rule{
			{Keywords: []string{"Checkout"}, Rating: Rating{"High", "Blocker"}},
			{Keywords: []string{"Payment"}, Rating: Rating{"Low", "Trivial"}},
		},
		Default: Rating{"Low", "Minor"},
	}
	assert.Equal(t, Rating{"High", "Blocker"}, c.Classify("Checkout Payment"))
	assert.Equal(t, Rating{"Low", "Trivial"}, c.Classify("Payment"))
	assert.Equal(t, Rating{"Low", "Minor"}, c.Classify("Cart"))
}

func TestExtract_ClassifiesOnFullSuitePath(t *testing.T) {
	r := rec("ADM-OM01 - dashboard widgets", "loads", results.StateFailed)
	r.SuitePath = []string{"GUI Checklist - SECURITY", "ADM-OM01 - dashboard widgets"}

	got := Extract([]results.TestRecord{r}, DefaultClassifier())
	require.Len(t, got, 1)
	assert.Equal(t, Rating{"High", "Critical"}, got[0].Rating)
}

type fixedClassifier Rating

func (f fixedClassifier) Classify(string) Rating { return Rating(f) }

func TestExtract_UsesInjectedClassifier(t *testing.T) {
	got := Extract([]results.TestRecord{rec("Cart", "a", results.StateFailed)}, fixedClassifier{"P0", "S0"})
	require.Len(t, got, 1)
	assert.Equal(t, "P0", got[0].Priority)
	assert.Equal(t, "S0", got[0].Severity)
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "BUG-001", FormatID(1))
	assert.Equal(t, "BUG-042", FormatID(42))
	assert.Equal(t, "BUG-1000", FormatID(1000))
}

func TestNormalizeRating(t *testing.T) {
	assert.Equal(t, Rating{"High", "Critical"}, NormalizeRating(Rating{" high ", "CRITICAL"}))
}

func TestGroupBySuite(t *testing.T) {
	got := GroupBySuite(Extract([]results.TestRecord{
		rec("Cart", "a", results.StateFailed),
		rec("Admin", "b", results.StateFailed),
		rec("Cart", "c", results.StateFailed),
	}, nil))

	require.Len(t, got, 2)
	assert.Equal(t, "Cart", got[0].Suite)
	assert.Len(t, got[0].Bugs, 2)
	assert.Equal(t, "Admin", got[1].Suite)
	assert.Equal(t, "BUG-002", got[1].Bugs[0].ID)
}
