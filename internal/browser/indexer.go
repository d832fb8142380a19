package browser

import "github.com/arangotui/arangotui/internal/types"

// RowKind identifies a row of the flattened graph listing
type RowKind int

const (
	RowGraph RowKind = iota
	RowEdge
	RowSpacer
)

// GraphRow is one addressable row of the graph listing.
// Graph is the owning graph for header and edge rows, and the preceding
// graph for spacer rows. Edge is -1 unless Kind is RowEdge.
type GraphRow struct {
	Kind  RowKind
	Graph int
	Edge  int
}

// EdgeIndex returns the edge-definition index for edge rows
func (r GraphRow) EdgeIndex() (int, bool) {
	if r.Kind != RowEdge {
		return 0, false
	}
	return r.Edge, true
}

// GraphIndex flattens graphs and their edge definitions into cursor rows:
// a header per graph, one row per edge definition, and a spacer between
// consecutive graphs.
type GraphIndex struct {
	rows []GraphRow
}

// NewGraphIndex builds the row table for a loaded graph list
func NewGraphIndex(graphs []types.GraphSummary) GraphIndex {
	rows := make([]GraphRow, 0, indexSize(graphs))
	for gi, g := range graphs {
		if gi > 0 {
			rows = append(rows, GraphRow{Kind: RowSpacer, Graph: gi - 1, Edge: -1})
		}
		rows = append(rows, GraphRow{Kind: RowGraph, Graph: gi, Edge: -1})
		for ei := range g.EdgeDefinitions {
			rows = append(rows, GraphRow{Kind: RowEdge, Graph: gi, Edge: ei})
		}
	}
	return GraphIndex{rows: rows}
}

func indexSize(graphs []types.GraphSummary) int {
	if len(graphs) == 0 {
		return 0
	}
	n := len(graphs) - 1
	for _, g := range graphs {
		n += 1 + len(g.EdgeDefinitions)
	}
	return n
}

// Len is the total number of cursor stops
func (ix GraphIndex) Len() int {
	return len(ix.rows)
}

// Row maps a flat cursor position to its row
func (ix GraphIndex) Row(cursor int) (GraphRow, bool) {
	if cursor < 0 || cursor >= len(ix.rows) {
		return GraphRow{}, false
	}
	return ix.rows[cursor], true
}

// Rows returns a copy of the row table
func (ix GraphIndex) Rows() []GraphRow {
	out := make([]GraphRow, len(ix.rows))
	copy(out, ix.rows)
	return out
}

// HeaderRow returns the cursor position of a graph's header row
func (ix GraphIndex) HeaderRow(graph int) (int, bool) {
	for i, r := range ix.rows {
		if r.Kind == RowGraph && r.Graph == graph {
			return i, true
		}
	}
	return 0, false
}

// Next advances a cursor with wraparound
func Next(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	return (cursor + 1) % total
}

// Prev moves a cursor back with wraparound
func Prev(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	if cursor <= 0 {
		return total - 1
	}
	return cursor - 1
}

// Clamp keeps a cursor inside [0, total), returning 0 for an empty list
func Clamp(cursor, total int) int {
	if total <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= total {
		return total - 1
	}
	return cursor
}
