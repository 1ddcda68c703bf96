package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeBiancalana/quire/internal/notes"
)

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatTSV   OutputFormat = "tsv"
	FormatCSV   OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: table, json, tsv, csv)", s)
	}
}

// writeNotes prints ns in the named format.
func writeNotes(w io.Writer, ns []*notes.Note, format string) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode(ns)
	case FormatCSV:
		return formatNotesCSV(w, ns)
	case FormatTSV:
		return formatNotesTSV(w, ns)
	}
	if len(ns) == 0 {
		fmt.Fprintln(w, "No notes yet.")
		return nil
	}
	return formatNotesTable(w, ns)
}

func formatNotesTable(w io.Writer, ns []*notes.Note) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tKIND\tUPDATED\tTAGS\tTITLE")
	for _, n := range ns {
		tags := "-"
		if len(n.Tags) > 0 {
			tags = strings.Join(n.Tags, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.Slug, n.Kind, n.UpdatedAt.Format("2006-01-02"), tags, n.Title)
	}
	return tw.Flush()
}

func formatNotesTSV(w io.Writer, ns []*notes.Note) error {
	fmt.Fprintln(w, "ID\tSLUG\tKIND\tUPDATED\tTAGS\tTITLE")
	for _, n := range ns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Slug, n.Kind, n.UpdatedAt.Format("2006-01-02"), strings.Join(n.Tags, ","), n.Title)
	}
	return nil
}

func formatNotesCSV(w io.Writer, ns []*notes.Note) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "SLUG", "KIND", "UPDATED", "TAGS", "TITLE"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, n := range ns {
		record := []string{n.ID, n.Slug, string(n.Kind), n.UpdatedAt.Format("2006-01-02"), strings.Join(n.Tags, ","), n.Title}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
