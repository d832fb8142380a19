package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arangotui/arangotui/internal/types"
)

// ExportJSON writes entries as an indented JSON array
func ExportJSON(w io.Writer, entries []types.HistoryEntry) error {
	if entries == nil {
		entries = []types.HistoryEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return nil
}

// WriteTable prints entries as aligned columns for the terminal
func WriteTable(w io.Writer, entries []types.HistoryEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPERATION\tTARGET\tITEMS\tDURATION\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%dms\t%s\n",
			e.Timestamp, e.Operation, Target(e), e.Items, e.DurationMs, Status(e))
	}
	return tw.Flush()
}

// Target renders database and collection/graph as one column
func Target(e types.HistoryEntry) string {
	parts := make([]string, 0, 2)
	if e.Database != "" {
		parts = append(parts, e.Database)
	}
	if e.Target != "" {
		parts = append(parts, e.Target)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ".")
}

// Status is "ok" or the first line of the recorded error
func Status(e types.HistoryEntry) string {
	if e.Error == "" {
		return "ok"
	}
	line, _, _ := strings.Cut(e.Error, "\n")
	return "error: " + line
}
