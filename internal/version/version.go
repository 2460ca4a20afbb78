// Package version holds build metadata injected via ldflags.
package version

import "fmt"

var (
	// Version is the semantic version, set at build time.
	Version = "dev"
	// Commit is the git commit hash, set at build time.
	Commit = "unknown"
	// Date is the build date, set at build time.
	Date = "unknown"
)

// Info returns a human-readable version string.
func Info() string {
	return fmt.Sprintf("gamelength %s (commit %s, built %s)", Version, Commit, Date)
}
