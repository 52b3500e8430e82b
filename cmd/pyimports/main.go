// Package main provides the entry point for the pyimports CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyimports/cmd/pyimports/commands"
	"github.com/Sumatoshi-tech/pyimports/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyimports",
		Short: "Scan Python sources and notebooks for imported modules",
		Long: `pyimports extracts every module imported by a set of Python source
files and Jupyter notebooks and classifies each module as required
(imported unindented at top level) or optional (only ever imported
inside conditional or nested blocks).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pyimports %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
