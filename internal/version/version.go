// Package version reports build information injected at link time.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build information for the version command.
func String() string {
	return fmt.Sprintf("foreport %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
