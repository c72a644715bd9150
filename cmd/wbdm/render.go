package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// diffRenderer prints entity diffs for humans.
type diffRenderer struct {
	w      io.Writer
	header *color.Color
	add    *color.Color
	remove *color.Color
	change *color.Color
}

func newDiffRenderer(w io.Writer, noColor bool) *diffRenderer {
	r := &diffRenderer{
		w:      w,
		header: color.New(color.Bold),
		add:    color.New(color.FgGreen),
		remove: color.New(color.FgRed),
		change: color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{r.header, r.add, r.remove, r.change} {
			c.DisableColor()
		}
	}
	return r
}

func (r *diffRenderer) render(d *services.EntityDiff) {
	if d.IsEmpty() {
		fmt.Fprintln(r.w, "No differences.")
		return
	}

	sections := []struct {
		name string
		diff *diff.Diff
	}{
		{"labels", d.Labels},
		{"descriptions", d.Descriptions},
		{"aliases", d.Aliases},
		{"claims", d.Claims},
		{string(d.Kind), d.Extension},
	}

	for _, s := range sections {
		if s.diff.IsEmpty() {
			continue
		}
		r.header.Fprintln(r.w, s.name)
		r.renderOps(s.diff, "  ")
	}
}

func (r *diffRenderer) renderOps(d *diff.Diff, indent string) {
	for _, key := range d.Keys() {
		op, _ := d.Get(key)
		switch op := op.(type) {
		case diff.Add:
			r.add.Fprintf(r.w, "%s+ %s: %s\n", indent, key, formatValue(op.NewValue))
		case diff.Remove:
			r.remove.Fprintf(r.w, "%s- %s: %s\n", indent, key, formatValue(op.OldValue))
		case diff.Change:
			r.change.Fprintf(r.w, "%s~ %s: %s -> %s\n", indent, key, formatValue(op.OldValue), formatValue(op.NewValue))
		case diff.SetDiff:
			r.change.Fprintf(r.w, "%s~ %s:\n", indent, key)
			for _, v := range op.Added {
				r.add.Fprintf(r.w, "%s  + %q\n", indent, v)
			}
			for _, v := range op.Removed {
				r.remove.Fprintf(r.w, "%s  - %q\n", indent, v)
			}
		case diff.Nested:
			r.change.Fprintf(r.w, "%s~ %s:\n", indent, key)
			r.renderOps(op.Diff, indent+"  ")
		}
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case *entities.Claim:
		return formatClaim(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatClaim(c *entities.Claim) string {
	var b strings.Builder
	b.WriteString(formatSnak(c.MainSnak()))
	if c.Rank() != entities.RankNone {
		fmt.Fprintf(&b, " [%s]", c.Rank())
	}
	if n := len(c.Qualifiers()); n > 0 {
		noun := "qualifiers"
		if n == 1 {
			noun = "qualifier"
		}
		fmt.Fprintf(&b, " (%d %s)", n, noun)
	}
	return b.String()
}

func formatSnak(s entities.Snak) string {
	property := displayID(s.Property())
	switch s.Type() {
	case entities.SnakNoValue:
		return property + " = no value"
	case entities.SnakSomeValue:
		return property + " = some value"
	}

	switch v := s.Value().(type) {
	case entities.StringValue:
		return fmt.Sprintf("%s = %q", property, string(v))
	case entities.EntityIDValue:
		return property + " = " + displayID(v.ID)
	case entities.QuantityValue:
		if v.Unit == "" || v.Unit == "1" {
			return property + " = " + v.Amount
		}
		return property + " = " + v.Amount + " " + v.Unit
	default:
		return fmt.Sprintf("%s = %v", property, v)
	}
}

// displayID prints ids the way users type them.
func displayID(id entities.EntityID) string {
	return strings.ToUpper(id.Serialization())
}
