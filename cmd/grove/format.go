package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// formatDefinitionsText formats CLIDefinition rows as aligned columns.
func formatDefinitionsText(w io.Writer, defs []CLIDefinition) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tPACKAGE\tFILE\tLINES\tREFS")
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d-%d\t%d\n",
			d.ID, d.Kind, d.Package, d.File, d.LineFrom, d.LineTo, d.RefCount)
	}
	tw.Flush()
}

// formatReferencesText formats CLIReference rows as "file:line context".
func formatReferencesText(w io.Writer, refs []CLIReference) {
	for _, r := range refs {
		fmt.Fprintf(w, "%s:%d\t%s\n", r.File, r.Line, r.Context)
	}
}

// formatFilesText formats CLIFile rows as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tLANGUAGE\tHASH\tLINES")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", f.Path, f.Language, f.Hash, f.LineCount)
	}
	tw.Flush()
}

// formatSummaryText formats CLISummary as readable text.
func formatSummaryText(w io.Writer, sum CLISummary) {
	fmt.Fprintln(w, "Snapshot Summary")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "Files: %d\n", sum.Files)
	fmt.Fprintf(w, "Definitions: %d\n", sum.Definitions)
	fmt.Fprintf(w, "References: %d\n", sum.References)

	if len(sum.ByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Definitions by kind:")
		kinds := make([]string, 0, len(sum.ByKind))
		for kind := range sum.ByKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(w, "  %s: %d\n", kind, sum.ByKind[kind])
		}
	}
}

// outputResultText dispatches to the appropriate text formatter based on
// the result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case []CLIDefinition:
		formatDefinitionsText(w, v)
	case []CLIReference:
		formatReferencesText(w, v)
	case []CLIFile:
		formatFilesText(w, v)
	case CLISummary:
		formatSummaryText(w, v)
	case nil:
		// No output for nil results.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
