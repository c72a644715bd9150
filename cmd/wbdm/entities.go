package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List entities with stored revisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				ids, err := d.RevisionHandler.Entities(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No entities.")
					return nil
				}
				for _, id := range ids {
					fmt.Fprintf(out, "%-12s %s\n", displayID(id), id.Kind())
				}
				return nil
			})
		},
	}
}
