package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

func newImportCmd() *cobra.Command {
	var (
		opts       handlers.ImportOptions
		onConflict string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an entity dump into the repository",
		Long:  "Imports a JSON or YAML list of entity documents, storing each as a revision.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.OnConflict = services.ConflictStrategy(onConflict)
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.ImportHandler.Handle(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}
				printImportResult(cmd.OutOrStdout(), result, opts.DryRun)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "auto", "Input format (json, yaml, auto)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&onConflict, "on-conflict", string(services.ConflictSkip), "How to handle existing entities (skip, overwrite)")
	cmd.Flags().StringVarP(&opts.Summary, "message", "m", "", "Revision summary")

	return cmd
}

func printImportResult(w io.Writer, result *services.ImportResult, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Fprintf(w, "%s %d entities (%d skipped, %d errors)\n", verb, result.Imported, result.Skipped, len(result.Errors))

	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}
