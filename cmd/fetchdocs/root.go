// Package main provides the entry point for the fetchdocs CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for fetchdocs.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetchdocs",
		Short: "Download a documentation manual as local markdown",
		Long: `fetchdocs downloads a single-site documentation manual for offline reading.

It fetches the manual's index page, discovers the pages it links to, and
downloads them concurrently. Each page's readable content is converted
to markdown and written to the output directory, with links between
pages rewritten to point at the local files. The index page becomes
toc.md.

Warning: the output directory is destroyed and recreated on every run.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
