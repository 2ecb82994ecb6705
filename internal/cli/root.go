// Package cli implements the memwatch command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// rootFlags holds global flag values shared by subcommands.
type rootFlags struct {
	configFile string
}

// NewRootCmd creates the top-level "memwatch" command with its global
// flags and subcommands.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "memwatch",
		Short: "Live terminal memory inspector",
		Long: `memwatch renders the current values of watched memory locations in a
terminal panel beside a scrolling log.

The library lives in pkg/memwatch; this binary ships a demo host and
reference commands.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: ./memwatch.yaml or ~/.config/memwatch/memwatch.yaml)")

	root.AddCommand(newDemoCmd(flags))
	root.AddCommand(newTypesCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "memwatch v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
			return err
		},
	}
}
