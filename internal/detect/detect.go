// Package detect sniffs a report document to determine its shape.
package detect

import (
	"bytes"
	"encoding/json"
)

// Shape represents a recognized report layout.
type Shape int

const (
	Unknown Shape = iota
	Flat          // mocha json reporter: top-level "tests" array
	Nested        // mochawesome: top-level "results[].suites[]" tree
	Bare          // valid JSON object with neither array
)

func (s Shape) String() string {
	switch s {
	case Flat:
		return "flat"
	case Nested:
		return "nested"
	case Bare:
		return "bare"
	default:
		return "unknown"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sniff examines a report document and returns its shape.
// Invalid JSON and non-object documents are Unknown.
func Sniff(data []byte) Shape {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '{' {
		return Unknown
	}

	var probe struct {
		Tests   json.RawMessage `json:"tests"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Unknown
	}

	// Nested wins when both are present: mochawesome never emits a
	// top-level tests array, mocha's json reporter never emits results.
	if isArray(probe.Results) {
		return Nested
	}
	if isArray(probe.Tests) {
		return Flat
	}
	return Bare
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	return len(raw) > 0 && raw[0] == '['
}
