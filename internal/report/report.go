// Package report renders batch results for the operator.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jsnanigans/excise/internal/batch"
)

// Format selects the rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// Write renders r in the given format.
func Write(w io.Writer, r *batch.Report, f Format) error {
	if f == FormatJSON {
		return JSON(w, r)
	}
	return Text(w, r)
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *batch.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Text writes one status block per document followed by a summary line.
func Text(w io.Writer, r *batch.Report) error {
	var b strings.Builder
	for _, o := range r.Outcomes {
		b.WriteString(statusLine(o, r.DryRun))
		b.WriteByte('\n')
		if o.OK() {
			fmt.Fprintf(&b, "   Lines %d to %d replaced with comment\n", o.StartLine, o.EndLine)
			if o.Preview != "" {
				b.WriteString(indent(o.Preview, "   "))
			}
		}
	}
	b.WriteByte('\n')
	b.WriteString(summary(r))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func statusLine(o batch.Outcome, dryRun bool) string {
	switch o.Kind {
	case batch.Removed:
		if dryRun {
			return fmt.Sprintf("🔎 Would remove %s from %s", o.Name, o.Path)
		}
		return fmt.Sprintf("✅ Removed %s from %s", o.Name, o.Path)
	case batch.DeclarationNotFound:
		return fmt.Sprintf("❌ Could not find %s near line %d in %s", o.Name, o.Hint, o.Path)
	case batch.MarkerNotFound:
		return fmt.Sprintf("❌ Could not find the marker comment above %s in %s", o.Name, o.Path)
	case batch.BlockEndNotFound:
		return fmt.Sprintf("❌ Could not find end of %s in %s", o.Name, o.Path)
	default:
		return fmt.Sprintf("❌ Error processing %s: %v", o.Path, o.Err)
	}
}

func summary(r *batch.Report) string {
	if r.DryRun {
		return fmt.Sprintf("🎉 Dry run done! %d would be removed, %d failed.", r.Removed, r.Failed)
	}
	return fmt.Sprintf("🎉 Done! %d removed, %d failed.", r.Removed, r.Failed)
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(l)
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
