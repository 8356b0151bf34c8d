package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := [3]string{Version, CommitHash, BuildDate}
	t.Cleanup(func() { Version, CommitHash, BuildDate = old[0], old[1], old[2] })

	Version, CommitHash, BuildDate = "v1.2.0", "abc123", "2025-08-01"
	assert.Equal(t, "foreport v1.2.0 (commit abc123, built 2025-08-01)", String())
}
