package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

const timeLayout = "2006-01-02 15:04:05"

func newRevisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "revisions",
		Aliases: []string{"rev"},
		Short:   "Store and inspect entity revisions",
	}

	cmd.AddCommand(
		newRevisionsSaveCmd(),
		newRevisionsLogCmd(),
		newRevisionsShowCmd(),
		newRevisionsDiffCmd(),
		newRevisionsPatchCmd(),
		newRevisionsRevertCmd(),
		newRevisionsAuditCmd(),
	)

	return cmd
}

func newRevisionsSaveCmd() *cobra.Command {
	var opts handlers.SaveOptions

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Store an entity document as a new revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.RevisionHandler.Save(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}
				printSaveResult(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Summary, "message", "m", "", "Revision summary")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Store a revision even when nothing changed")
	cmd.Flags().StringVar(&opts.Format, "input-format", "auto", "Input format (json, yaml, auto)")

	return cmd
}

func newRevisionsLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log ID",
		Short: "List the revisions of an entity, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				revs, err := d.RevisionHandler.Log(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRevisions(cmd.OutOrStdout(), revs)
				return nil
			})
		},
	}
}

func newRevisionsShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show ID [NUMBER]",
		Short: "Print the entity stored in a revision (latest by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := 0
			if len(args) == 2 {
				n, err := parseRevisionNumber(args[1])
				if err != nil {
					return err
				}
				number = n
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				outFormat := documentFormat(format, d)
				if err := checkFormat(outFormat, validFormats); err != nil {
					return err
				}
				rev, err := d.RevisionHandler.Show(cmd.Context(), args[0], number)
				if err != nil {
					return err
				}
				return handlers.WriteEntity(cmd.OutOrStdout(), rev.Entity, outFormat)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, yaml; default from config)")

	return cmd
}

func newRevisionsDiffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff ID FROM TO",
		Short: "Diff two revisions of an entity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, validDiffFormats); err != nil {
				return err
			}
			from, err := parseRevisionNumber(args[1])
			if err != nil {
				return err
			}
			to, err := parseRevisionNumber(args[2])
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.RevisionHandler.Diff(cmd.Context(), args[0], from, to)
				if err != nil {
					return err
				}
				return printDiff(cmd, d, result, format, "")
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	return cmd
}

func newRevisionsPatchCmd() *cobra.Command {
	var summary, inputFormat string

	cmd := &cobra.Command{
		Use:   "patch ID DIFF",
		Short: "Apply a diff document to the latest revision of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.RevisionHandler.Patch(cmd.Context(), args[0], args[1], inputFormat, summary)
				if err != nil {
					return err
				}
				printSaveResult(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&summary, "message", "m", "", "Revision summary")
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "Input format (json, yaml, auto)")

	return cmd
}

func newRevisionsRevertCmd() *cobra.Command {
	var summary string

	cmd := &cobra.Command{
		Use:   "revert ID NUMBER",
		Short: "Store an earlier revision as the newest one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRevisionNumber(args[1])
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.RevisionHandler.Revert(cmd.Context(), args[0], number, summary)
				if err != nil {
					return err
				}
				printSaveResult(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&summary, "message", "m", "", "Revision summary (default: revert to revision N)")

	return cmd
}

func newRevisionsAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit ID",
		Short: "Show the audit log of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.RevisionHandler.Audit(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printAudit(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
}

func parseRevisionNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid revision number %q", s)
	}
	return n, nil
}

func printSaveResult(w io.Writer, res *services.SaveResult) {
	if !res.Created {
		fmt.Fprintf(w, "No changes; %s stays at revision %d\n", displayID(res.Revision.EntityID), res.Revision.Number)
		return
	}
	fmt.Fprintf(w, "Saved %s revision %d (%d operations)\n",
		displayID(res.Revision.EntityID), res.Revision.Number, res.Diff.Len())
}

func printRevisions(w io.Writer, revs []entities.Revision) {
	if len(revs) == 0 {
		fmt.Fprintln(w, "No revisions.")
		return
	}

	fmt.Fprintf(w, "%-6s %-19s %s\n", "REV", "CREATED", "SUMMARY")
	for _, rev := range revs {
		fmt.Fprintf(w, "%-6d %-19s %s\n", rev.Number, rev.CreatedAt.Local().Format(timeLayout), rev.Summary)
	}
}

func printAudit(w io.Writer, entries []entities.AuditEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No audit entries.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-16s", e.CreatedAt.Local().Format(timeLayout), e.Action)
		if rev, ok := e.Details["revision"]; ok {
			fmt.Fprintf(w, " revision %v", rev)
		}
		if summary, ok := e.Details["summary"].(string); ok && summary != "" {
			fmt.Fprintf(w, " %q", summary)
		}
		fmt.Fprintln(w)
	}
}
