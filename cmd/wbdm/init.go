package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wbdm workspace",
		Long:  "Creates a .wbdm directory with default configuration and a default revision repository.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler(newRepoHandler()).Handle(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Created repository %q at %s\n", result.RepoName, result.DatabasePath)
	fmt.Fprintln(out, "wbdm initialized successfully!")

	return nil
}
