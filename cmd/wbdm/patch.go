package main

import (
	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
)

type patchFlags struct {
	format      string
	inputFormat string
	output      string
}

func newPatchCmd() *cobra.Command {
	var flags patchFlags

	cmd := &cobra.Command{
		Use:   "patch BASE DIFF",
		Short: "Apply a diff document to an entity document",
		Long:  "Applies DIFF to the entity in BASE and writes the patched entity. BASE itself is left unchanged.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (json, yaml; default from config)")
	cmd.Flags().StringVar(&flags.inputFormat, "input-format", "auto", "Input format (json, yaml, auto)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runPatch(cmd *cobra.Command, basePath, diffPath string, flags patchFlags) error {
	return withFileDeps(func(d *Deps) (err error) {
		format := documentFormat(flags.format, d)
		if err := checkFormat(format, validFormats); err != nil {
			return err
		}

		patched, err := d.DiffHandler.Patch(basePath, diffPath, flags.inputFormat)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(cmd.OutOrStdout(), flags.output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		return handlers.WriteEntity(w, patched, format)
	})
}
