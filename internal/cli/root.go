// Package cli wires the setup flows into the gitsetup command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitsetup/internal/ui"
)

// Global flags
var (
	configFlag  string
	noColorFlag bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "gitsetup",
	Short: "Bootstrap a workstation for Git hosting providers",
	Long: `gitsetup prepares a developer machine for working with Git-based
source hosting: it verifies the required tools, configures the global git
identity, creates or reuses an SSH key, checks that the key authenticates,
and clones an initial set of repositories.

Run it with no arguments for the interactive menu, or use a subcommand to
run a single step.

Examples:
  gitsetup
  gitsetup deps
  gitsetup all`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
		if verboseFlag {
			os.Setenv("GITSETUP_DEBUG", "1")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		ui.PrintHeader(ui.HeaderInfo{
			Version: formatVersion(version),
			Tagline: "workstation setup for git hosting",
		})
		return menuLoop(s)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command, printing any error and exiting non-zero
// on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
