package render

import (
	"encoding/json"
	"time"

	"github.com/dkoosis/foreport/pkg/results"
)

// JSON renders the aggregated model as a structural dump plus a metadata block.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

func (j *JSON) Name() string { return "json" }

// jsonOutput is the top-level JSON structure. The embedded model
// round-trips: unmarshalling the output into results.Model restores it.
type jsonOutput struct {
	results.Model
	Metadata jsonMetadata `json:"metadata"`
}

type jsonMetadata struct {
	GeneratedAt   string `json:"generatedAt"`
	RunID         string `json:"runId,omitempty"`
	TotalFiles    int    `json:"totalFiles"`
	SkippedFiles  int    `json:"skippedFiles"`
	TotalTests    int    `json:"totalTests"`
	TotalFailures int    `json:"totalFailures"`
}

// Render formats the model as indented JSON.
func (j *JSON) Render(m *results.Model) (string, error) {
	out := jsonOutput{
		Model: nonNil(m),
		Metadata: jsonMetadata{
			GeneratedAt:   isoTime(m.GeneratedAt),
			RunID:         m.RunID,
			TotalFiles:    len(m.Files),
			SkippedFiles:  len(m.Skipped),
			TotalTests:    m.Stats.Tests,
			TotalFailures: m.Stats.Failures,
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// nonNil returns a shallow copy of m whose slices encode as [] rather than null.
func nonNil(m *results.Model) results.Model {
	c := *m
	if c.Records == nil {
		c.Records = []results.TestRecord{}
	}
	if c.Files == nil {
		c.Files = []string{}
	}
	return c
}

// isoTime formats t the way JavaScript's Date.toISOString does.
func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
