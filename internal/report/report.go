// Package report renders diagnostics and run history for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"guidelint/internal/diagnostic"
	"guidelint/internal/storage"
)

// Format selects how diagnostics are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" and "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("unknown output format %q (text|json)", s)
}

var (
	pathColor    = color.New(color.Bold)
	ruleColor    = color.New(color.FgCyan)
	summaryColor = color.New(color.Bold)

	severityColors = map[diagnostic.Severity]*color.Color{
		diagnostic.SevInfo:    color.New(color.FgBlue),
		diagnostic.SevWarning: color.New(color.FgYellow, color.Bold),
		diagnostic.SevError:   color.New(color.FgRed, color.Bold),
	}
)

// Printer writes reports to one destination.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer. Colors follow color.NoColor, which is
// already off when w is not a terminal.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Diagnostics prints diags followed, for text, by a summary line.
func (p *Printer) Diagnostics(diags []diagnostic.Diagnostic) error {
	if p.format == FormatJSON {
		return p.json(diags)
	}

	for _, d := range diags {
		sev := severityColors[d.Severity]
		if sev == nil {
			sev = color.New()
		}
		_, err := fmt.Fprintf(p.w, "%s: %s %s: %s\n",
			pathColor.Sprint(d.Location), sev.Sprint(d.Severity), ruleColor.Sprint(d.Rule), d.Message)
		if err != nil {
			return err
		}
	}

	_, err := summaryColor.Fprintln(p.w, Summary(diags))
	return err
}

// Runs prints the run history.
func (p *Printer) Runs(runs []storage.Run) error {
	if p.format == FormatJSON {
		return p.json(runs)
	}

	for _, r := range runs {
		_, err := fmt.Fprintf(p.w, "#%d  %s  files=%d diagnostics=%d errors=%d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Files, r.Diagnostics, r.Errors, strings.Join(r.Roots, " "))
		if err != nil {
			return err
		}
	}

	return nil
}

// Rules prints the rule catalog.
func (p *Printer) Rules(descs []diagnostic.Descriptor) error {
	if p.format == FormatJSON {
		type rule struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Category string `json:"category"`
			Severity string `json:"severity"`
			HelpLink string `json:"help_link"`
		}
		out := make([]rule, 0, len(descs))
		for _, d := range descs {
			out = append(out, rule{d.ID, d.Title, d.Category.String(), d.Severity.String(), d.HelpLink()})
		}
		return p.json(out)
	}

	for _, d := range descs {
		_, err := fmt.Fprintf(p.w, "%s  %-20s %-8s %s\n    %s\n",
			ruleColor.Sprint(d.ID), d.Category, d.Severity, d.Title, d.HelpLink())
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// Summary counts diagnostics by severity.
func Summary(diags []diagnostic.Diagnostic) string {
	if len(diags) == 0 {
		return "no issues found"
	}

	var counts [diagnostic.SevError + 1]int
	for _, d := range diags {
		if int(d.Severity) < len(counts) {
			counts[d.Severity]++
		}
	}

	return fmt.Sprintf("%d issue(s): %d error(s), %d warning(s), %d info",
		len(diags), counts[diagnostic.SevError], counts[diagnostic.SevWarning], counts[diagnostic.SevInfo])
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []diagnostic.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diagnostic.SevError {
			return true
		}
	}

	return false
}
