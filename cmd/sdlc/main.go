// Package main implements the sdlc CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sdlc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sdlc",
	Short: "Structure Definition Language compiler",
	Long:  `sdlc resolves SDL structure definitions into per-language backend output, plus an optional listing file.`,
}

// main registers every subcommand and persistent flag, then runs the
// selected command, exiting 1 on error.
func main() {
	rootCmd.Version = version.Plain

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect before the bag stops accepting more")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// wantColor resolves the --color flag against whether out is a terminal.
func wantColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}
