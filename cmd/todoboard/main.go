// Package main is the entry point for the todoboard CLI.
//
// TodoBoard can be run either as a library (SDK) or as a standalone binary
// with an optional YAML or TOML configuration file. This CLI provides the
// standalone binary approach, plus a few commands for talking to a board
// that is already running.
//
// Usage:
//
//	todoboard serve -c board.yaml      # Start the board
//	todoboard validate -c board.yaml   # Validate configuration
//	todoboard list                     # Print the todos of a running board
//	todoboard add "Buy milk"           # Add a todo
//	todoboard done <id>                # Check a todo off
//	todoboard version                  # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "todoboard",
	Short: "A minimal server-rendered todo list",
	Long: `TodoBoard is a minimal, server-rendered todo list.

It keeps todos in memory and serves an HTML page that uses htmx to
create and check off items without full page reloads.

Quick start:
  1. Run: todoboard serve
  2. Open http://127.0.0.1:3000 in your browser

Example config:
  title: Get things done
  port: 3000
  todos:
    - title: Buy milk`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this todoboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "todoboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
