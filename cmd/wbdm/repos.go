package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
)

func newReposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Manage revision repositories",
		RunE:  runReposList,
	}

	cmd.AddCommand(
		newReposListCmd(),
		newReposCreateCmd(),
		newReposRemoveCmd(),
	)

	return cmd
}

func newReposListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all repositories",
		RunE:  runReposList,
	}
}

func runReposList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	infos, err := newRepoHandler().List(cwd)
	if err != nil {
		return err
	}

	printRepos(cmd.OutOrStdout(), infos)
	return nil
}

func printRepos(w io.Writer, infos []handlers.RepoInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No repositories configured.")
		fmt.Fprintln(w, "Use 'wbdm repos create NAME' to create a repository.")
		return
	}

	fmt.Fprintf(w, "%-20s %-45s %s\n", "NAME", "PATH", "DESCRIPTION")
	fmt.Fprintf(w, "%-20s %-45s %s\n", "----", "----", "-----------")

	for _, info := range infos {
		fmt.Fprintf(w, "%-20s %-45s %s\n", info.Name, info.Path, info.Description)
	}
}

func newReposCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			info, err := newRepoHandler().Create(cmd.Context(), cwd, args[0], description)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created repository %q at %s\n", info.Name, info.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Repository description")

	return cmd
}

func newReposRemoveCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a repository from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if err := newRepoHandler().Remove(cwd, args[0], purge); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed repository %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also delete the repository's revision database")

	return cmd
}
