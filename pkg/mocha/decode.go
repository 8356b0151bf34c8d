package mocha

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkoosis/foreport/internal/detect"
)

// ErrUnrecognized is returned when a document is not a JSON object.
var ErrUnrecognized = errors.New("not a mocha report document")

// Decode parses a report file into a Document. A JSON object carrying
// neither a tests nor a results array decodes as an empty nested report.
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	shape := detect.Sniff(data)
	switch shape {
	case detect.Flat:
		var r FlatReport
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode flat report: %w", err)
		}
		return &Document{Shape: shape, Flat: &r}, nil

	case detect.Nested, detect.Bare:
		var r NestedReport
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode nested report: %w", err)
		}
		return &Document{Shape: detect.Nested, Nested: &r}, nil

	default:
		// Surface the json error when there is one; it names the offset.
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		return nil, ErrUnrecognized
	}
}
