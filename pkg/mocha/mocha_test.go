package mocha

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/foreport/internal/detect"
	"github.com/dkoosis/foreport/pkg/results"
)

func decodeFixture(t *testing.T, name string) *Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)
	return doc
}

func TestDecode_FlatFixture(t *testing.T) {
	doc := decodeFixture(t, "flat.json")
	require.Equal(t, detect.Flat, doc.Shape)
	require.NotNil(t, doc.Flat)
	assert.Nil(t, doc.Nested)

	fr := doc.Normalize("flat.json")
	require.Len(t, fr.Records, 3)

	states := []results.State{fr.Records[0].State, fr.Records[1].State, fr.Records[2].State}
	assert.Equal(t, []results.State{results.StatePassed, results.StateFailed, results.StatePending}, states)

	failed := fr.Records[1]
	assert.Equal(t, "Cart Functionality Tests", failed.SuiteTitle)
	assert.Equal(t, "cypress/e2e/cart-functionality.cy.js", failed.SpecFile)
	assert.Equal(t, "flat.json", failed.SourceFile)
	require.NotNil(t, failed.Error)
	assert.Contains(t, failed.Error.Message, "expected '$24.00'")
	assert.Contains(t, failed.Error.Stack, "cart-functionality.cy.js:280")

	assert.Nil(t, fr.Records[0].Error, "passing tests carry no error")
	assert.Zero(t, fr.Records[2].DurationMs)

	assert.Equal(t, results.Stats{
		Suites: 1, Tests: 3, Passes: 1, Pending: 1, Failures: 1, DurationMs: 4250,
		Start: "2025-08-01T10:00:00.000Z", End: "2025-08-01T10:00:04.250Z",
	}, fr.Increment)
}

func TestDecode_NestedFixture(t *testing.T) {
	doc := decodeFixture(t, "nested.json")
	require.Equal(t, detect.Nested, doc.Shape)
	require.NotNil(t, doc.Nested)

	fr := doc.Normalize("nested.json")
	require.Len(t, fr.Records, 3)

	titles := []string{fr.Records[0].Title, fr.Records[1].Title, fr.Records[2].Title}
	assert.Equal(t, []string{"shows the orders table", "keeps every order listed", "shows the reset button"}, titles)

	inner := fr.Records[1]
	assert.Equal(t, "ADM-OM27 - Search with an empty search term", inner.SuiteTitle)
	assert.Equal(t, []string{"Admin Orders List Tests", "ADM-OM27 - Search with an empty search term"}, inner.SuitePath)
	assert.Equal(t, "cypress/e2e/admin/order-list.cy.js", inner.SpecFile)
	assert.Equal(t, results.StateFailed, inner.State)
	require.NotNil(t, inner.Error)
	assert.Contains(t, inner.Error.Stack, "order-list.cy.js:330", "estack maps to Stack")
	assert.Contains(t, inner.Code, "#search-query")
	assert.Equal(t, "7f6e5d4c-3b2a-4190-8f7e-6d5c4b3a2918", inner.UUID)

	assert.Equal(t, results.Meta{MochaVersion: "7.2.0", MochawesomeVersion: "7.1.3", MargeVersion: "6.2.0"}, fr.Meta)
	assert.Equal(t, 3, fr.Increment.Tests)
	assert.Equal(t, 1, fr.Increment.Failures)
	assert.Equal(t, int64(12500), fr.Increment.DurationMs)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"stats": {"tests": 1`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnrecognized)
}

func TestDecode_NonObject(t *testing.T) {
	_, err := Decode([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestDecode_BareObjectIsEmptyNested(t *testing.T) {
	doc, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, detect.Nested, doc.Shape)

	fr := doc.Normalize("empty.json")
	assert.Empty(t, fr.Records)
	assert.Equal(t, results.Stats{}, fr.Increment)
}

func TestNormalize_MissingFieldsDefaultToZero(t *testing.T) {
	doc, err := Decode([]byte(`{"results":[{"suites":[{"title":"Admin","tests":[{"title":"Y"}]}]}]}`))
	require.NoError(t, err)

	fr := doc.Normalize("b.json")
	require.Len(t, fr.Records, 1)
	rec := fr.Records[0]
	assert.Equal(t, "Y", rec.Title)
	assert.Empty(t, rec.FullTitle)
	assert.Zero(t, rec.DurationMs)
	assert.False(t, rec.State.IsKnown(), "a test without state, flags or error is not counted as pass or fail")
}

func TestNormalize_DerivesIncrementWithoutStats(t *testing.T) {
	doc, err := Decode([]byte(`{"results":[{"suites":[
		{"title":"Admin","tests":[{"title":"Y","state":"passed","duration":7}]},
		{"title":"Cart","tests":[{"title":"Z","state":"failed","err":{"message":"boom"}},{"title":"W","pending":true}]}
	]}]}`))
	require.NoError(t, err)

	inc := doc.Normalize("c.json").Increment
	assert.Equal(t, results.Stats{Suites: 2, Tests: 3, Passes: 1, Failures: 1, Pending: 1, DurationMs: 7}, inc)
}

func TestNormalize_ResidualOtherKeepsInvariant(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTests int
		wantOther int
	}{
		{
			name:      "tests exceed known states",
			input:     `{"stats":{"tests":5,"passes":2,"failures":1},"tests":[]}`,
			wantTests: 5,
			wantOther: 2,
		},
		{
			name:      "known states exceed tests",
			input:     `{"stats":{"tests":1,"passes":2,"failures":1},"tests":[]}`,
			wantTests: 3,
			wantOther: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			inc := doc.Normalize("x.json").Increment
			assert.Equal(t, tt.wantTests, inc.Tests)
			assert.Equal(t, tt.wantOther, inc.Other)
			assert.Equal(t, inc.Tests, inc.Passes+inc.Failures+inc.Pending+inc.Other)
		})
	}
}

func TestNormalize_LenientNumbers(t *testing.T) {
	doc, err := Decode([]byte(`{"stats":{"tests":"2","passes":2.0,"duration":null},"tests":[
		{"title":"a","fullTitle":"S a","duration":12.6,"err":{}},
		{"title":"b","fullTitle":"S b","duration":"oops","err":{}}
	]}`))
	require.NoError(t, err)

	fr := doc.Normalize("n.json")
	assert.Equal(t, 2, fr.Increment.Tests)
	assert.Equal(t, 2, fr.Increment.Passes)
	assert.Zero(t, fr.Increment.DurationMs)
	assert.Equal(t, int64(13), fr.Records[0].DurationMs)
	assert.Zero(t, fr.Records[1].DurationMs)
}

func TestNormalize_FailedWithoutErrorObject(t *testing.T) {
	doc, err := Decode([]byte(`{"results":[{"suites":[{"title":"S","tests":[{"title":"t","state":"failed"}]}]}]}`))
	require.NoError(t, err)

	rec := doc.Normalize("f.json").Records[0]
	assert.Equal(t, results.StateFailed, rec.State)
	assert.Nil(t, rec.Error)
	assert.Empty(t, rec.ErrorMessage())
}

func TestNormalize_RootLevelTestsUseResultTitle(t *testing.T) {
	doc, err := Decode([]byte(`{"results":[{"title":"","file":"cypress/e2e/sample.cy.js","tests":[{"title":"root","state":"passed"}]}]}`))
	require.NoError(t, err)

	rec := doc.Normalize("r.json").Records[0]
	assert.Equal(t, "cypress/e2e/sample.cy.js", rec.SuiteTitle)
}

func TestSuiteFromFullTitle(t *testing.T) {
	assert.Equal(t, "Checkout Tests", suiteFromFullTitle("Checkout Tests pays by card", "pays by card"))
	assert.Equal(t, "", suiteFromFullTitle("standalone", "standalone"))
	assert.Equal(t, "", suiteFromFullTitle("", ""))
}
