package mocha

import (
	"strings"

	"github.com/dkoosis/foreport/pkg/results"
)

// Normalize converts the document into records and a stats increment.
// source is the report file path recorded as provenance on every record.
func (d *Document) Normalize(source string) results.FileResult {
	fr := results.FileResult{Path: source}

	var stats *Stats
	var meta *Meta
	switch {
	case d.Flat != nil:
		fr.Records = flatRecords(d.Flat, source)
		stats, meta = d.Flat.Stats, d.Flat.Meta
	case d.Nested != nil:
		fr.Records = nestedRecords(d.Nested, source)
		stats, meta = d.Nested.Stats, d.Nested.Meta
	}

	fr.Increment = increment(stats, fr.Records)
	if meta != nil {
		fr.Meta = results.Meta{
			MochaVersion:       meta.Mocha.Version,
			MochawesomeVersion: meta.Mochawesome.Version,
			MargeVersion:       meta.Marge.Version,
		}
	}
	return fr
}

// increment prefers the file's own stats block and falls back to counting
// records. Other is the residual so the counters always add up to Tests.
func increment(s *Stats, records []results.TestRecord) results.Stats {
	var inc results.Stats
	if s == nil {
		inc = results.CountStates(records)
		inc.Suites = countSuites(records)
		return inc
	}

	inc = results.Stats{
		Suites:     s.Suites.Int(),
		Tests:      s.Tests.Int(),
		Passes:     s.Passes.Int(),
		Pending:    s.Pending.Int(),
		Failures:   s.Failures.Int(),
		DurationMs: s.Duration.Millis(),
		Start:      s.Start,
		End:        s.End,
	}
	known := inc.Passes + inc.Failures + inc.Pending
	if known > inc.Tests {
		inc.Tests = known
	}
	inc.Other = inc.Tests - known
	return inc
}

func countSuites(records []results.TestRecord) int {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.SuiteTitle] = true
	}
	return len(seen)
}

func flatRecords(r *FlatReport, source string) []results.TestRecord {
	pending := make(map[string]bool, len(r.Pending))
	for _, p := range r.Pending {
		pending[p.FullTitle] = true
	}

	records := make([]results.TestRecord, 0, len(r.Tests))
	for _, t := range r.Tests {
		suite := suiteFromFullTitle(t.FullTitle, t.Title)
		rec := results.TestRecord{
			SuiteTitle: suite,
			Title:      t.Title,
			FullTitle:  t.FullTitle,
			State:      flatState(t, pending[t.FullTitle]),
			DurationMs: t.Duration.Millis(),
			SpecFile:   t.File,
			SourceFile: source,
		}
		if suite != "" {
			rec.SuitePath = []string{suite}
		}
		if rec.State == results.StateFailed {
			rec.Error = convertError(t.Err)
		}
		records = append(records, rec)
	}
	return records
}

func flatState(t FlatTest, listedPending bool) results.State {
	switch {
	case t.State != "":
		return results.State(t.State)
	case listedPending || t.Pending:
		return results.StatePending
	case !t.Err.empty():
		return results.StateFailed
	default:
		return results.StatePassed
	}
}

// suiteFromFullTitle strips the test title from mocha's "suite title" join.
func suiteFromFullTitle(fullTitle, title string) string {
	if title == "" || fullTitle == title {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(fullTitle, title))
}

func nestedRecords(r *NestedReport, source string) []results.TestRecord {
	var records []results.TestRecord
	for _, res := range r.Results {
		spec := firstNonEmpty(res.File, res.FullFile)
		rootTitle := firstNonEmpty(res.Title, spec)
		for _, t := range res.Tests {
			records = append(records, nestedRecord(t, rootTitle, nil, spec, source))
		}
		for _, s := range res.Suites {
			records = walkSuite(records, s, nil, spec, source)
		}
	}
	return records
}

// walkSuite appends records depth-first: a suite's own tests come before
// the tests of its child suites.
func walkSuite(records []results.TestRecord, s Suite, parents []string, spec, source string) []results.TestRecord {
	path := make([]string, 0, len(parents)+1)
	path = append(path, parents...)
	path = append(path, s.Title)

	if f := firstNonEmpty(s.File, s.FullFile); f != "" {
		spec = f
	}
	for _, t := range s.Tests {
		records = append(records, nestedRecord(t, s.Title, path, spec, source))
	}
	for _, child := range s.Suites {
		records = walkSuite(records, child, path, spec, source)
	}
	return records
}

func nestedRecord(t Test, suite string, path []string, spec, source string) results.TestRecord {
	rec := results.TestRecord{
		SuiteTitle: suite,
		SuitePath:  path,
		Title:      t.Title,
		FullTitle:  t.FullTitle,
		State:      nestedState(t),
		DurationMs: t.Duration.Millis(),
		Code:       t.Code,
		UUID:       t.UUID,
		SpecFile:   spec,
		SourceFile: source,
	}
	if rec.SuitePath == nil && suite != "" {
		rec.SuitePath = []string{suite}
	}
	if rec.State == results.StateFailed {
		rec.Error = convertError(t.Err)
	}
	return rec
}

func nestedState(t Test) results.State {
	switch {
	case t.State != "":
		return results.State(t.State)
	case t.Pending:
		return results.StatePending
	case t.Skipped:
		return results.State("skipped")
	case !t.Err.empty():
		return results.StateFailed
	default:
		return results.State("unknown")
	}
}

// convertError returns nil when the source carries nothing; a failed test
// without an err object is tolerated.
func convertError(e *RawError) *results.TestError {
	if e.empty() {
		return nil
	}
	return &results.TestError{
		Message: e.Message,
		Stack:   firstNonEmpty(e.EStack, e.Stack),
		Diff:    e.Diff,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
