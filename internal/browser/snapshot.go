package browser

import "github.com/arangotui/arangotui/internal/types"

// Snapshot is a consistent copy of the controller state for rendering.
// Slices are shared with the controller and must not be modified.
type Snapshot struct {
	View       View
	Accessible bool

	Databases   []types.DatabaseSummary
	Collections []types.CollectionEntry
	Graphs      []types.GraphSummary
	GraphIndex  GraphIndex
	Detail      *types.CollectionDetail
	Documents   *types.DocumentSample

	DatabaseIndex   int
	CollectionIndex int
	GraphRow        int
	Scroll          int

	ModalActive     bool
	ModalBuffer     string
	ModalCollection string

	StackDepth int
	LastError  error
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, modalColl := c.modal.Origin()
	return Snapshot{
		View:            c.view,
		Accessible:      c.accessible,
		Databases:       c.databases,
		Collections:     c.collections,
		Graphs:          c.graphs,
		GraphIndex:      c.graphIndex,
		Detail:          c.detail,
		Documents:       c.documents,
		DatabaseIndex:   c.dbIndex,
		CollectionIndex: c.collIndex,
		GraphRow:        c.graphRow,
		Scroll:          c.scroll,
		ModalActive:     c.modal.Active(),
		ModalBuffer:     c.modal.Buffer(),
		ModalCollection: modalColl,
		StackDepth:      c.stack.Len(),
		LastError:       c.lastErr,
	}
}

// Selection returns the cursor of the active list view, 0 for detail views
func (s Snapshot) Selection() int {
	switch s.View.(type) {
	case DatabaseList:
		return s.DatabaseIndex
	case CollectionList:
		return s.CollectionIndex
	case GraphList:
		return s.GraphRow
	}
	return 0
}

// SelectedDatabase returns the highlighted database summary
func (s Snapshot) SelectedDatabase() (types.DatabaseSummary, bool) {
	if s.DatabaseIndex < 0 || s.DatabaseIndex >= len(s.Databases) {
		return types.DatabaseSummary{}, false
	}
	return s.Databases[s.DatabaseIndex], true
}

// SelectedCollection returns the highlighted collection
func (s Snapshot) SelectedCollection() (types.CollectionEntry, bool) {
	if s.CollectionIndex < 0 || s.CollectionIndex >= len(s.Collections) {
		return types.CollectionEntry{}, false
	}
	return s.Collections[s.CollectionIndex], true
}

// SelectedGraph returns the graph shown by GraphProperties, or the graph
// owning the highlighted row of GraphList
func (s Snapshot) SelectedGraph() (types.GraphSummary, bool) {
	switch v := s.View.(type) {
	case GraphProperties:
		for _, g := range s.Graphs {
			if g.Name == v.Graph {
				return g, true
			}
		}
	case GraphList:
		row, ok := s.GraphIndex.Row(s.GraphRow)
		if ok && row.Kind != RowSpacer {
			return s.Graphs[row.Graph], true
		}
	}
	return types.GraphSummary{}, false
}

// SelectedEdge returns the edge definition under the graph list cursor
func (s Snapshot) SelectedEdge() (types.EdgeDefinition, bool) {
	row, ok := s.GraphIndex.Row(s.GraphRow)
	if !ok || row.Kind != RowEdge {
		return types.EdgeDefinition{}, false
	}
	return s.Graphs[row.Graph].EdgeDefinitions[row.Edge], true
}

// RowLabels returns one searchable label per cursor stop of the active list view
func (s Snapshot) RowLabels() []string {
	switch s.View.(type) {
	case DatabaseList:
		out := make([]string, len(s.Databases))
		for i, d := range s.Databases {
			out[i] = d.Name
		}
		return out
	case CollectionList:
		out := make([]string, len(s.Collections))
		for i, e := range s.Collections {
			out[i] = e.Info.Name
		}
		return out
	case GraphList:
		rows := s.GraphIndex.Rows()
		out := make([]string, len(rows))
		for i, r := range rows {
			switch r.Kind {
			case RowGraph:
				out[i] = s.Graphs[r.Graph].Name
			case RowEdge:
				out[i] = s.Graphs[r.Graph].EdgeDefinitions[r.Edge].Collection
			}
		}
		return out
	}
	return nil
}
