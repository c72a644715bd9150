package main

import (
	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

type diffFlags struct {
	format      string
	inputFormat string
	output      string
}

func newDiffCmd() *cobra.Command {
	var flags diffFlags

	cmd := &cobra.Command{
		Use:   "diff FROM TO",
		Short: "Compute the diff between two entity documents",
		Long:  "Reads two entity documents (JSON or YAML) and prints the diff from FROM to TO.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVar(&flags.inputFormat, "input-format", "auto", "Input format (json, yaml, auto)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runDiff(cmd *cobra.Command, fromPath, toPath string, flags diffFlags) error {
	if err := checkFormat(flags.format, validDiffFormats); err != nil {
		return err
	}

	return withFileDeps(func(d *Deps) error {
		result, err := d.DiffHandler.Diff(fromPath, toPath, flags.inputFormat)
		if err != nil {
			return err
		}
		return printDiff(cmd, d, result, flags.format, flags.output)
	})
}

// printDiff writes result as coloured text or as a diff document.
func printDiff(cmd *cobra.Command, d *Deps, result *services.EntityDiff, format, output string) (err error) {
	w, closeFn, err := openOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if format == "text" {
		newDiffRenderer(w, d.Config.Output.NoColor || output != "").render(result)
		return nil
	}
	return handlers.WriteDiff(w, result, format)
}
