// Package buildinfo holds release metadata reported by the API and finctl.
package buildinfo

var (
	// Version will be set via ldflags during build.
	Version = "1.0.0"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)
