// Package version holds build-time identifying information for the sdlc
// CLI, overridable via -ldflags at release build time.
package version

import "github.com/fatih/color"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// Plain is Version without ANSI color codes, for output that must
	// stay readable outside a terminal (listing file headers, --version
	// when stdout isn't a tty).
	Plain = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional ISO-8601 build date.
	BuildDate = ""
)
