// Package cmd wires the lifecycle handler, store, and config into a
// Cobra CLI: one subcommand per spec.md §6 operation, each supporting
// --json on stdout while structured logs go to stderr.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	GroupLifecycle   = "lifecycle"
	GroupInspect     = "inspect"
	GroupMaintenance = "maintenance"
)

var (
	verboseFlag bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "kild",
	Short:         "Manage isolated git-worktree workspaces for parallel AI coding agents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupLifecycle, Title: "Lifecycle:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection:"},
		&cobra.Group{ID: GroupMaintenance, Title: "Maintenance:"},
	)
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Log errors only")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

// exitCode is set by a command's RunE via setExit before returning, so
// Execute can report a code other than 0/1 (e.g. "nothing to do")
// without Cobra itself interpreting a non-nil error as always-1.
var exitCode int

func setExit(code int) { exitCode = code }
