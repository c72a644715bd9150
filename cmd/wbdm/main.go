// Package main provides the entry point for the wbdm CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalRepo    string
	globalNoColor bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "wbdm",
		Short:   "Diff, patch and version Wikibase entity documents",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalRepo, "repo", "r", DefaultRepo, "Revision repository to operate on")
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		newInitCmd(),
		newReposCmd(),
		newDiffCmd(),
		newPatchCmd(),
		newRevisionsCmd(),
		newImportCmd(),
		newEntitiesCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
