// Package version contains build version information, set at build time via ldflags.
package version

var (
	// Version is the released version.
	Version = "0.1.0"
	// GitCommit is the git commit hash.
	GitCommit = "unknown"
	// BuildDate is the build date.
	BuildDate = "unknown"
)
