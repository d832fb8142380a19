package browser

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arangotui/arangotui/internal/types"
)

var errUnreachable = errors.New("unreachable")

type sampleCall struct {
	db, coll string
	limit    int
}

// fakeGateway serves canned datasets and counts calls per operation
type fakeGateway struct {
	mu sync.Mutex

	databases   []types.DatabaseSummary
	collections map[string][]types.CollectionEntry
	graphs      map[string][]types.GraphSummary

	fail    map[string]bool
	calls   map[string]int
	samples []sampleCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		databases: []types.DatabaseSummary{
			{Name: "a", Accessible: true, DocCollections: 2},
			{Name: "b", Accessible: false},
		},
		collections: map[string][]types.CollectionEntry{
			"a": {
				entry("_graphs", true, types.CollectionTypeDocument),
				entry("persons", false, types.CollectionTypeDocument),
				entry("knows", false, types.CollectionTypeEdge),
				entry("_apps", true, types.CollectionTypeDocument),
				entry("cities", false, types.CollectionTypeDocument),
			},
		},
		graphs: map[string][]types.GraphSummary{
			"a": {graph("g1", "e1", "knows"), graph("g2")},
		},
		fail:  map[string]bool{},
		calls: map[string]int{},
	}
}

func entry(name string, system bool, typ int) types.CollectionEntry {
	n := uint64(len(name))
	return types.CollectionEntry{
		Info:  types.CollectionInfo{Name: name, IsSystem: system, Type: typ},
		Count: &n,
	}
}

func (g *fakeGateway) hit(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[op]++
	if g.fail[op] {
		return errUnreachable
	}
	return nil
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) DatabaseSummaries(ctx context.Context) ([]types.DatabaseSummary, error) {
	if err := g.hit("databases"); err != nil {
		return nil, err
	}
	return g.databases, nil
}

func (g *fakeGateway) CollectionsWithCounts(ctx context.Context, db string) ([]types.CollectionEntry, error) {
	if err := g.hit("collections"); err != nil {
		return nil, err
	}
	return g.collections[db], nil
}

func (g *fakeGateway) CollectionDetail(ctx context.Context, db, coll string) (*types.CollectionDetail, error) {
	if err := g.hit("detail"); err != nil {
		return nil, err
	}
	return &types.CollectionDetail{Name: coll, Count: 3}, nil
}

func (g *fakeGateway) Graphs(ctx context.Context, db string) ([]types.GraphSummary, error) {
	if err := g.hit("graphs"); err != nil {
		return nil, err
	}
	return g.graphs[db], nil
}

func (g *fakeGateway) SampleDocuments(ctx context.Context, db, coll string, limit int) (*types.DocumentSample, error) {
	if err := g.hit("sample"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.samples = append(g.samples, sampleCall{db: db, coll: coll, limit: limit})
	g.mu.Unlock()
	return &types.DocumentSample{Collection: coll, Limit: limit}, nil
}

func newTestController(t *testing.T, gw *fakeGateway) *Controller {
	t.Helper()
	c := New(gw, Options{})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func press(t *testing.T, c *Controller, actions ...Action) Result {
	t.Helper()
	var res Result
	for _, a := range actions {
		res = c.Handle(context.Background(), Key(a))
	}
	return res
}

// enterCollections opens database "a"
func enterCollections(t *testing.T, c *Controller) {
	t.Helper()
	press(t, c, ActionActivate)
	require.Equal(t, CollectionList{DB: "a"}, c.Snapshot().View)
}

func TestSortCollections(t *testing.T) {
	gw := newFakeGateway()
	sorted := SortCollections(gw.collections["a"])

	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.Info.Name
	}
	assert.Equal(t, []string{"cities", "knows", "persons", "_apps", "_graphs"}, names)
	assert.Equal(t, "_graphs", gw.collections["a"][0].Info.Name, "input must not be reordered")
}

func TestController_LoadFailureIsSticky(t *testing.T) {
	gw := newFakeGateway()
	gw.fail["databases"] = true
	c := New(gw, Options{})

	err := c.Load(context.Background())
	require.ErrorIs(t, err, errUnreachable)

	snap := c.Snapshot()
	assert.False(t, snap.Accessible)
	assert.Equal(t, DatabaseList{}, snap.View)

	// Activate does nothing while the list is inaccessible
	res := press(t, c, ActionActivate)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, gw.count("collections"))

	gw.fail["databases"] = false
	press(t, c, ActionRefresh)
	assert.True(t, c.Snapshot().Accessible)
}

func TestController_InaccessibleDatabaseIsNoop(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)

	press(t, c, ActionDown)
	require.Equal(t, 1, c.Snapshot().DatabaseIndex)

	res := press(t, c, ActionActivate)
	assert.False(t, res.Changed)
	assert.NoError(t, res.Err)

	snap := c.Snapshot()
	assert.Equal(t, DatabaseList{}, snap.View)
	assert.Equal(t, 1, snap.DatabaseIndex)
	assert.Equal(t, 0, gw.count("collections"))
}

func TestController_DatabaseListWraparound(t *testing.T) {
	c := newTestController(t, newFakeGateway())

	press(t, c, ActionUp)
	assert.Equal(t, 1, c.Snapshot().DatabaseIndex)
	press(t, c, ActionDown)
	assert.Equal(t, 0, c.Snapshot().DatabaseIndex)
}

func TestController_BackFromDatabaseListExits(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	res := press(t, c, ActionBack)
	assert.True(t, res.Exit)
}

func TestController_CollectionListSorted(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	enterCollections(t, c)

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.CollectionIndex)
	assert.Equal(t, []string{"cities", "knows", "persons", "_apps", "_graphs"}, snap.RowLabels())
}

func TestController_CollectionProperties(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	enterCollections(t, c)

	press(t, c, ActionActivate)
	snap := c.Snapshot()
	require.Equal(t, CollectionProperties{DB: "a", Collection: "cities"}, snap.View)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "cities", snap.Detail.Name)

	press(t, c, ActionDown, ActionDown, ActionPageDown)
	assert.Equal(t, 2+DefaultPageSize, c.Snapshot().Scroll)
	press(t, c, ActionPageUp, ActionPageUp)
	assert.Equal(t, 0, c.Snapshot().Scroll)

	press(t, c, ActionBack)
	snap = c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Nil(t, snap.Detail)
	assert.Equal(t, 0, snap.Scroll)
}

func TestController_FetchFailureStaysPut(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionDown)

	gw.fail["detail"] = true
	res := press(t, c, ActionActivate)

	require.ErrorIs(t, res.Err, errUnreachable)
	assert.False(t, res.Changed)

	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 1, snap.CollectionIndex)
	assert.Len(t, snap.Collections, 5)
	assert.ErrorIs(t, snap.LastError, errUnreachable)

	gw.fail["detail"] = false
	press(t, c, ActionActivate)
	assert.NoError(t, c.Snapshot().LastError)
}

func TestController_SampleModal(t *testing.T) {
	tests := []struct {
		name  string
		keys  []Event
		limit int
	}{
		{"typed ten", []Event{Char('1'), Char('0')}, 10},
		{"empty buffer", nil, 10},
		{"letters ignored", []Event{Char('x'), Char('5')}, 5},
		{"backspace", []Event{Char('4'), Char('2'), Key(ActionBackspace)}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			c := newTestController(t, gw)
			enterCollections(t, c)
			press(t, c, ActionDown) // knows

			press(t, c, ActionSampleDocuments)
			require.True(t, c.Snapshot().ModalActive)

			for _, ev := range tt.keys {
				c.Handle(context.Background(), ev)
			}
			press(t, c, ActionConfirm)

			require.Len(t, gw.samples, 1)
			assert.Equal(t, sampleCall{db: "a", coll: "knows", limit: tt.limit}, gw.samples[0])

			snap := c.Snapshot()
			assert.False(t, snap.ModalActive)
			assert.Equal(t, DocumentViewer{DB: "a", Collection: "knows"}, snap.View)
			require.NotNil(t, snap.Documents)
			assert.Equal(t, tt.limit, snap.Documents.Limit)
		})
	}
}

func TestController_ModalIsolation(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionSampleDocuments)

	before := c.Snapshot()
	for _, a := range []Action{ActionUp, ActionDown, ActionPageUp, ActionPageDown, ActionActivate,
		ActionBack, ActionOpenGraphs, ActionSampleDocuments, ActionJumpToVertex, ActionRefresh} {
		res := press(t, c, a)
		assert.False(t, res.Changed, "action %s changed view", a)
	}

	after := c.Snapshot()
	assert.Equal(t, before.View, after.View)
	assert.Equal(t, before.CollectionIndex, after.CollectionIndex)
	assert.True(t, after.ModalActive)
	assert.Equal(t, 0, gw.count("detail"))
	assert.Equal(t, 0, gw.count("graphs"))

	press(t, c, ActionCancel)
	snap := c.Snapshot()
	assert.False(t, snap.ModalActive)
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 0, gw.count("sample"))
}

func TestController_ModalWillFetch(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	enterCollections(t, c)
	press(t, c, ActionSampleDocuments)

	assert.True(t, c.WillFetch(Key(ActionConfirm)))
	assert.False(t, c.WillFetch(Key(ActionActivate)))
	assert.False(t, c.WillFetch(Char('1')))
}

func TestController_GraphList(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	enterCollections(t, c)

	press(t, c, ActionOpenGraphs)
	snap := c.Snapshot()
	require.Equal(t, GraphList{DB: "a"}, snap.View)
	assert.Equal(t, 5, snap.GraphIndex.Len())
	assert.Equal(t, []string{"g1", "e1", "knows", "", "g2"}, snap.RowLabels())

	// Wraparound over all rows including the spacer
	press(t, c, ActionUp)
	assert.Equal(t, 4, c.Snapshot().GraphRow)
	press(t, c, ActionDown)
	assert.Equal(t, 0, c.Snapshot().GraphRow)

	// Spacer activation is a no-op
	require.True(t, c.Select(3))
	res := press(t, c, ActionActivate)
	assert.False(t, res.Changed)

	// Header row opens the resident graph without a fetch
	require.True(t, c.Select(4))
	press(t, c, ActionActivate)
	snap = c.Snapshot()
	assert.Equal(t, GraphProperties{DB: "a", Graph: "g2"}, snap.View)
	g, ok := snap.SelectedGraph()
	require.True(t, ok)
	assert.Equal(t, "g2", g.Name)

	press(t, c, ActionBack)
	assert.Equal(t, GraphList{DB: "a"}, c.Snapshot().View)
	assert.Equal(t, 4, c.Snapshot().GraphRow)
}

func TestController_JumpToEdgeCollection(t *testing.T) {
	gw := newFakeGateway()
	gw.collections["a"] = []types.CollectionEntry{
		entry("a1", false, types.CollectionTypeDocument),
		entry("a2", false, types.CollectionTypeDocument),
		entry("a3", false, types.CollectionTypeDocument),
		entry("knows", false, types.CollectionTypeEdge),
		entry("zeta", false, types.CollectionTypeDocument),
	}
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)

	require.True(t, c.Select(2)) // g1 -> knows
	require.True(t, c.WillFetch(Key(ActionActivate)))
	press(t, c, ActionActivate)

	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 3, snap.CollectionIndex)
	assert.Equal(t, 1, snap.StackDepth)

	top, ok := c.stack.Peek()
	require.True(t, ok)
	assert.Equal(t, StackEntry{View: GraphList{DB: "a"}, Index: 2}, top)
}

func TestController_JumpToVertexFallsBackToFirstRow(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)

	// e1_from is not a collection of "a"
	require.True(t, c.Select(1))
	press(t, c, ActionJumpToVertex)

	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 0, snap.CollectionIndex)
	assert.Equal(t, 1, snap.StackDepth)
}

func TestController_JumpToVertexOnHeaderIsNoop(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)

	before := gw.count("collections")
	res := press(t, c, ActionJumpToVertex)
	assert.False(t, res.Changed)
	assert.Equal(t, before, gw.count("collections"))
}

func TestController_BackPopsStackWithRefetch(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)
	require.True(t, c.Select(2))
	press(t, c, ActionActivate)
	require.Equal(t, 1, c.Snapshot().StackDepth)

	graphsBefore := gw.count("graphs")
	press(t, c, ActionBack)

	snap := c.Snapshot()
	assert.Equal(t, GraphList{DB: "a"}, snap.View)
	assert.Equal(t, 2, snap.GraphRow)
	assert.Equal(t, 0, snap.StackDepth)
	assert.Equal(t, graphsBefore+1, gw.count("graphs"), "suspended view must be re-fetched")
}

func TestController_BackPopClampsShrunkenDataset(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)
	require.True(t, c.Select(2))
	press(t, c, ActionActivate)

	gw.graphs["a"] = []types.GraphSummary{graph("only")}
	press(t, c, ActionBack)

	snap := c.Snapshot()
	assert.Equal(t, GraphList{DB: "a"}, snap.View)
	assert.Equal(t, 0, snap.GraphRow)
}

func TestController_BackPopFailureKeepsStack(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)
	require.True(t, c.Select(1))
	press(t, c, ActionActivate)

	gw.fail["graphs"] = true
	res := press(t, c, ActionBack)

	require.Error(t, res.Err)
	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 1, snap.StackDepth)
}

func TestController_BackFromGraphListClearsStack(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)
	require.True(t, c.Select(1))
	press(t, c, ActionActivate)
	press(t, c, ActionOpenGraphs)
	require.Equal(t, 1, c.Snapshot().StackDepth)

	press(t, c, ActionBack)
	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Equal(t, 0, snap.StackDepth)

	press(t, c, ActionBack)
	snap = c.Snapshot()
	assert.Equal(t, DatabaseList{}, snap.View)
	assert.Empty(t, snap.Collections)
}

func TestController_RefreshClampsSelection(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	require.True(t, c.Select(4))

	gw.collections["a"] = gw.collections["a"][:2]
	press(t, c, ActionRefresh)

	snap := c.Snapshot()
	assert.Len(t, snap.Collections, 2)
	assert.Equal(t, 1, snap.CollectionIndex)
}

func TestController_DocumentViewerRefreshKeepsLimit(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionSampleDocuments)
	c.Handle(context.Background(), Char('3'))
	press(t, c, ActionConfirm)
	press(t, c, ActionRefresh)

	require.Len(t, gw.samples, 2)
	assert.Equal(t, 3, gw.samples[1].limit)

	press(t, c, ActionBack)
	snap := c.Snapshot()
	assert.Equal(t, CollectionList{DB: "a"}, snap.View)
	assert.Nil(t, snap.Documents)
}

func TestController_FailedTransitionsPushNothing(t *testing.T) {
	tests := []struct {
		name    string
		fail    string
		prepare func(t *testing.T, c *Controller)
		action  Action
		view    View
	}{
		{
			name: "edge jump",
			fail: "collections",
			prepare: func(t *testing.T, c *Controller) {
				press(t, c, ActionOpenGraphs)
				require.True(t, c.Select(2))
			},
			action: ActionActivate,
			view:   GraphList{DB: "a"},
		},
		{
			name: "vertex jump",
			fail: "collections",
			prepare: func(t *testing.T, c *Controller) {
				press(t, c, ActionOpenGraphs)
				require.True(t, c.Select(1))
			},
			action: ActionJumpToVertex,
			view:   GraphList{DB: "a"},
		},
		{
			name:    "open graphs",
			fail:    "graphs",
			prepare: func(t *testing.T, c *Controller) {},
			action:  ActionOpenGraphs,
			view:    CollectionList{DB: "a"},
		},
		{
			name: "sample confirm",
			fail: "sample",
			prepare: func(t *testing.T, c *Controller) {
				press(t, c, ActionSampleDocuments)
				c.Handle(context.Background(), Char('5'))
			},
			action: ActionConfirm,
			view:   CollectionList{DB: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			c := newTestController(t, gw)
			enterCollections(t, c)
			tt.prepare(t, c)
			before := c.Snapshot()

			gw.fail[tt.fail] = true
			res := press(t, c, tt.action)

			require.ErrorIs(t, res.Err, errUnreachable)
			assert.False(t, res.Changed)

			snap := c.Snapshot()
			assert.Equal(t, tt.view, snap.View)
			assert.Equal(t, 0, snap.StackDepth)
			assert.Equal(t, before.Selection(), snap.Selection())
			assert.Equal(t, before.Collections, snap.Collections)
			assert.Nil(t, snap.Documents)
			assert.ErrorIs(t, snap.LastError, errUnreachable)
		})
	}
}

func TestController_RefreshDroppedGraphFallsBackToList(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(t, gw)
	enterCollections(t, c)
	press(t, c, ActionOpenGraphs)

	require.True(t, c.Select(4))
	press(t, c, ActionActivate)
	require.Equal(t, GraphProperties{DB: "a", Graph: "g2"}, c.Snapshot().View)

	// Still present: refresh stays on the graph
	res := press(t, c, ActionRefresh)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed)
	assert.Equal(t, GraphProperties{DB: "a", Graph: "g2"}, c.Snapshot().View)

	gw.graphs["a"] = []types.GraphSummary{graph("g1", "e1", "knows")}
	res = press(t, c, ActionRefresh)

	require.NoError(t, res.Err)
	assert.True(t, res.Changed)
	snap := c.Snapshot()
	assert.Equal(t, GraphList{DB: "a"}, snap.View)
	assert.Equal(t, 2, snap.GraphRow)
	assert.Equal(t, 0, snap.Scroll)
}

func TestController_ScrollLimit(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	enterCollections(t, c)
	press(t, c, ActionActivate)

	c.SetScrollLimit(12)
	press(t, c, ActionPageDown, ActionDown)
	assert.Equal(t, 11, c.Snapshot().Scroll)
	press(t, c, ActionPageDown)
	assert.Equal(t, 12, c.Snapshot().Scroll)
	press(t, c, ActionDown)
	assert.Equal(t, 12, c.Snapshot().Scroll)

	// The first step back is visible
	press(t, c, ActionUp)
	assert.Equal(t, 11, c.Snapshot().Scroll)

	// A shrinking bound pulls the offset in
	c.SetScrollLimit(4)
	assert.Equal(t, 4, c.Snapshot().Scroll)

	c.SetScrollLimit(-1)
	press(t, c, ActionPageDown)
	assert.Equal(t, 4+DefaultPageSize, c.Snapshot().Scroll)
}

func TestController_SelectOutOfRange(t *testing.T) {
	c := newTestController(t, newFakeGateway())
	assert.False(t, c.Select(2))
	assert.False(t, c.Select(-1))
	assert.True(t, c.Select(1))
}

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, 0, saturatingAdd(0, -1))
	assert.Equal(t, 0, saturatingAdd(3, -10))
	assert.Equal(t, 13, saturatingAdd(3, 10))
}
