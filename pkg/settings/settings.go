// Package settings provides build metadata and per-run options shared by the
// vcrx CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "vcrx"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration for a single execution of the CLI.
type Run struct {
	MinLogLevel int8
	ConfigPath  string
	Channel     string
	IsQuiet     bool
}

// NewCliParams returns Run defaults for CLI usage.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
	}
}
