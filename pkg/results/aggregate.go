package results

import "time"

// Aggregator folds per-file results into one Model. Files must be added in
// enumeration order; the record order of the model follows it.
type Aggregator struct {
	stats   Stats
	records []TestRecord
	meta    Meta
	files   []string
	start   time.Time
	end     time.Time
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add folds one file's contribution into the running totals.
func (a *Aggregator) Add(f FileResult) {
	inc := f.Increment
	a.stats.Suites += inc.Suites
	a.stats.Tests += inc.Tests
	a.stats.Passes += inc.Passes
	a.stats.Pending += inc.Pending
	a.stats.Failures += inc.Failures
	a.stats.Other += inc.Other
	a.stats.DurationMs += inc.DurationMs

	if t, ok := parseTimestamp(inc.Start); ok && (a.start.IsZero() || t.Before(a.start)) {
		a.start = t
		a.stats.Start = inc.Start
	}
	if t, ok := parseTimestamp(inc.End); ok && (a.end.IsZero() || t.After(a.end)) {
		a.end = t
		a.stats.End = inc.End
	}

	a.records = append(a.records, f.Records...)
	a.files = append(a.files, f.Path)

	// First non-empty value wins.
	if a.meta.MochaVersion == "" {
		a.meta.MochaVersion = f.Meta.MochaVersion
	}
	if a.meta.MochawesomeVersion == "" {
		a.meta.MochawesomeVersion = f.Meta.MochawesomeVersion
	}
	if a.meta.MargeVersion == "" {
		a.meta.MargeVersion = f.Meta.MargeVersion
	}
}

// Model returns the aggregated model. The returned slices are copies.
func (a *Aggregator) Model() Model {
	m := Model{
		Stats:   a.stats,
		Records: make([]TestRecord, len(a.records)),
		Meta:    a.meta,
		Files:   make([]string, len(a.files)),
	}
	copy(m.Records, a.records)
	copy(m.Files, a.files)
	return m
}

// Aggregate folds files in the given order.
func Aggregate(files ...FileResult) Model {
	agg := NewAggregator()
	for _, f := range files {
		agg.Add(f)
	}
	return agg.Model()
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Failed returns the failed records in model order.
func (m *Model) Failed() []TestRecord {
	var out []TestRecord
	for _, r := range m.Records {
		if r.State == StateFailed {
			out = append(out, r)
		}
	}
	return out
}

// Suites returns distinct suite titles in first-seen order.
func (m *Model) Suites() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range m.Records {
		if seen[r.SuiteTitle] {
			continue
		}
		seen[r.SuiteTitle] = true
		out = append(out, r.SuiteTitle)
	}
	return out
}

// CountStates tallies records by state. Unknown states land in Other.
func CountStates(records []TestRecord) Stats {
	var s Stats
	for _, r := range records {
		s.Tests++
		s.DurationMs += r.DurationMs
		switch r.State {
		case StatePassed:
			s.Passes++
		case StateFailed:
			s.Failures++
		case StatePending:
			s.Pending++
		default:
			s.Other++
		}
	}
	return s
}
