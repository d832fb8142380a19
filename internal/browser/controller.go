package browser

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/types"
)

// DefaultPageSize is the scroll step of page up/down
const DefaultPageSize = 10

// Gateway is the read-only remote API the controller drives.
// Every call blocks until it succeeds or fails.
type Gateway interface {
	DatabaseSummaries(ctx context.Context) ([]types.DatabaseSummary, error)
	CollectionsWithCounts(ctx context.Context, database string) ([]types.CollectionEntry, error)
	CollectionDetail(ctx context.Context, database, collection string) (*types.CollectionDetail, error)
	Graphs(ctx context.Context, database string) ([]types.GraphSummary, error)
	SampleDocuments(ctx context.Context, database, collection string, limit int) (*types.DocumentSample, error)
}

// Options configures a Controller
type Options struct {
	PageSize          int
	DefaultSampleSize int
	Logger            *zap.Logger
}

// Result reports what handling one event did
type Result struct {
	// Changed is true when the active view was replaced
	Changed bool
	// Exit is true when the user backed out of the database list
	Exit bool
	// Err is the fetch failure that aborted the transition, if any
	Err error
}

// Controller owns the browser state: the active view, the loaded datasets,
// selection indices, the input modal and the navigation stack.
//
// Events are handled one at a time. A fetch happens before any state is
// touched, so a failed fetch leaves the controller exactly as it was.
type Controller struct {
	gw       Gateway
	logger   *zap.Logger
	pageSize int

	// serial orders Handle/Load/Select calls; mu guards state for Snapshot readers
	serial sync.Mutex
	mu     sync.RWMutex

	view        View
	accessible  bool
	databases   []types.DatabaseSummary
	collections []types.CollectionEntry
	graphs      []types.GraphSummary
	graphIndex  GraphIndex
	detail      *types.CollectionDetail
	documents   *types.DocumentSample

	dbIndex   int
	collIndex int
	graphRow  int
	scroll    int
	// scrollMax bounds scroll in detail views; negative means unbounded
	scrollMax int

	modal   *InputModal
	stack   NavigationStack
	lastErr error
}

// New creates a controller on the database list
func New(gw Gateway, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.DefaultSampleSize <= 0 {
		opts.DefaultSampleSize = DefaultSampleSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Controller{
		gw:         gw,
		logger:     opts.Logger,
		pageSize:   opts.PageSize,
		view:       DatabaseList{},
		accessible: true,
		scrollMax:  -1,
		modal:      NewInputModal(opts.DefaultSampleSize),
	}
}

// Load (re)enters the database list and replaces the database summaries.
// A failure flips the sticky accessibility flag instead of changing data.
func (c *Controller) Load(ctx context.Context) error {
	c.serial.Lock()
	defer c.serial.Unlock()

	summaries, err := c.gw.DatabaseSummaries(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = DatabaseList{}
	c.stack.Clear()
	c.modal.Cancel()
	c.scroll = 0
	if err != nil {
		c.accessible = false
		c.lastErr = err
		c.logger.Warn("database list not accessible", zap.Error(err))
		return err
	}

	c.accessible = true
	c.databases = summaries
	c.dbIndex = 0
	c.lastErr = nil
	return nil
}

// Handle applies one input event
func (c *Controller) Handle(ctx context.Context, ev Event) Result {
	c.serial.Lock()
	defer c.serial.Unlock()

	before := c.view
	var res Result

	// The modal sees every event before the view does
	if c.modal.Active() {
		res = c.handleModal(ctx, ev)
	} else {
		res = c.dispatch(ctx, c.view, ev)
	}

	if c.view != before {
		res.Changed = true
		c.logger.Debug("view transition",
			zap.Stringer("from", before.Kind()),
			zap.Stringer("to", c.view.Kind()),
			zap.Stringer("action", ev.Action),
		)
	}

	return res
}

func (c *Controller) dispatch(ctx context.Context, view View, ev Event) Result {
	switch v := view.(type) {
	case DatabaseList:
		return c.handleDatabaseList(ctx, ev)
	case CollectionList:
		return c.handleCollectionList(ctx, v, ev)
	case GraphList:
		return c.handleGraphList(ctx, v, ev)
	case CollectionProperties, DocumentViewer, GraphProperties:
		return c.handleDetail(ctx, v, ev)
	}
	return Result{}
}

// WillFetch reports whether handling ev in the current state issues a remote call
func (c *Controller) WillFetch(ev Event) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.modal.Active() {
		return ev.Action == ActionConfirm
	}
	if ev.Action == ActionRefresh {
		return true
	}

	switch c.view.(type) {
	case DatabaseList:
		if ev.Action != ActionActivate || !c.accessible {
			return false
		}
		return c.dbIndex < len(c.databases) && c.databases[c.dbIndex].Accessible
	case CollectionList:
		switch ev.Action {
		case ActionActivate:
			return len(c.collections) > 0
		case ActionOpenGraphs:
			return true
		case ActionBack:
			return c.stack.Len() > 0
		}
	case GraphList:
		row, ok := c.graphIndex.Row(c.graphRow)
		if !ok || row.Kind != RowEdge {
			return false
		}
		switch ev.Action {
		case ActionActivate:
			return true
		case ActionJumpToVertex:
			return len(c.graphs[row.Graph].EdgeDefinitions[row.Edge].From) > 0
		}
	}
	return false
}

// Select moves the cursor of the current list view; false if out of range
func (c *Controller) Select(index int) bool {
	c.serial.Lock()
	defer c.serial.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.Active() || index < 0 {
		return false
	}

	switch c.view.(type) {
	case DatabaseList:
		if index >= len(c.databases) {
			return false
		}
		c.dbIndex = index
	case CollectionList:
		if index >= len(c.collections) {
			return false
		}
		c.collIndex = index
	case GraphList:
		if index >= c.graphIndex.Len() {
			return false
		}
		c.graphRow = index
	default:
		return false
	}
	return true
}

func (c *Controller) handleModal(ctx context.Context, ev Event) Result {
	switch ev.Action {
	case ActionInsertChar:
		c.mu.Lock()
		c.modal.Append(ev.Rune)
		c.mu.Unlock()
	case ActionBackspace:
		c.mu.Lock()
		c.modal.Backspace()
		c.mu.Unlock()
	case ActionCancel:
		c.mu.Lock()
		c.modal.Cancel()
		c.mu.Unlock()
	case ActionConfirm:
		c.mu.Lock()
		limit, origin, collection := c.modal.Confirm()
		c.mu.Unlock()
		if origin == nil {
			return Result{}
		}
		return c.sample(ctx, origin.Database(), collection, limit)
	}
	return Result{}
}

func (c *Controller) handleDatabaseList(ctx context.Context, ev Event) Result {
	switch ev.Action {
	case ActionUp, ActionDown, ActionPageUp, ActionPageDown:
		c.mu.Lock()
		c.dbIndex = c.moveCursor(c.dbIndex, len(c.databases), ev.Action)
		c.mu.Unlock()

	case ActionActivate:
		if !c.accessible || c.dbIndex >= len(c.databases) {
			return Result{}
		}
		db := c.databases[c.dbIndex]
		if !db.Accessible {
			return Result{}
		}
		entries, err := c.gw.CollectionsWithCounts(ctx, db.Name)
		if err != nil {
			return c.fail(ev, err)
		}
		sorted := SortCollections(entries)

		c.mu.Lock()
		c.collections = sorted
		c.collIndex = 0
		c.scroll = 0
		c.stack.Clear()
		c.view = CollectionList{DB: db.Name}
		c.lastErr = nil
		c.mu.Unlock()

	case ActionBack:
		return Result{Exit: true}

	case ActionRefresh:
		return c.refresh(ctx, ev)
	}
	return Result{}
}

func (c *Controller) handleCollectionList(ctx context.Context, v CollectionList, ev Event) Result {
	switch ev.Action {
	case ActionUp, ActionDown, ActionPageUp, ActionPageDown:
		c.mu.Lock()
		c.collIndex = c.moveCursor(c.collIndex, len(c.collections), ev.Action)
		c.mu.Unlock()

	case ActionActivate:
		if c.collIndex >= len(c.collections) {
			return Result{}
		}
		name := c.collections[c.collIndex].Info.Name
		detail, err := c.gw.CollectionDetail(ctx, v.DB, name)
		if err != nil {
			return c.fail(ev, err)
		}

		c.mu.Lock()
		c.detail = detail
		c.scroll = 0
		c.view = CollectionProperties{DB: v.DB, Collection: name}
		c.lastErr = nil
		c.mu.Unlock()

	case ActionOpenGraphs:
		graphs, err := c.gw.Graphs(ctx, v.DB)
		if err != nil {
			return c.fail(ev, err)
		}

		c.mu.Lock()
		c.installGraphs(graphs)
		c.graphRow = 0
		c.scroll = 0
		c.view = GraphList{DB: v.DB}
		c.lastErr = nil
		c.mu.Unlock()

	case ActionSampleDocuments:
		if c.collIndex >= len(c.collections) {
			return Result{}
		}
		c.mu.Lock()
		c.modal.Open(v, c.collections[c.collIndex].Info.Name)
		c.mu.Unlock()

	case ActionBack:
		entry, ok := c.stack.Peek()
		if !ok {
			c.mu.Lock()
			c.view = DatabaseList{}
			c.collections = nil
			c.collIndex = 0
			c.scroll = 0
			c.mu.Unlock()
			return Result{}
		}

		// The suspended view's dataset is re-fetched, never reused
		install, total, err := c.fetchFor(ctx, entry.View)
		if err != nil {
			return c.fail(ev, err)
		}

		c.mu.Lock()
		c.stack.Pop()
		install()
		c.setSelection(entry.View, Clamp(entry.Index, total()))
		c.scroll = 0
		c.view = entry.View
		c.lastErr = nil
		c.mu.Unlock()

	case ActionRefresh:
		return c.refresh(ctx, ev)
	}
	return Result{}
}

func (c *Controller) handleGraphList(ctx context.Context, v GraphList, ev Event) Result {
	switch ev.Action {
	case ActionUp, ActionDown, ActionPageUp, ActionPageDown:
		c.mu.Lock()
		c.graphRow = c.moveCursor(c.graphRow, c.graphIndex.Len(), ev.Action)
		c.mu.Unlock()

	case ActionActivate:
		row, ok := c.graphIndex.Row(c.graphRow)
		if !ok {
			return Result{}
		}
		switch row.Kind {
		case RowGraph:
			// Graph detail is already resident in the loaded list
			c.mu.Lock()
			c.scroll = 0
			c.view = GraphProperties{DB: v.DB, Graph: c.graphs[row.Graph].Name}
			c.mu.Unlock()
		case RowEdge:
			edge := c.graphs[row.Graph].EdgeDefinitions[row.Edge]
			return c.jump(ctx, v, edge.Collection, ev)
		}

	case ActionJumpToVertex:
		row, ok := c.graphIndex.Row(c.graphRow)
		if !ok || row.Kind != RowEdge {
			return Result{}
		}
		edge := c.graphs[row.Graph].EdgeDefinitions[row.Edge]
		if len(edge.From) == 0 {
			return Result{}
		}
		return c.jump(ctx, v, edge.From[0], ev)

	case ActionBack:
		// Collections of this database are still resident
		c.mu.Lock()
		c.stack.Clear()
		c.collIndex = Clamp(c.collIndex, len(c.collections))
		c.scroll = 0
		c.view = CollectionList{DB: v.DB}
		c.mu.Unlock()

	case ActionRefresh:
		return c.refresh(ctx, ev)
	}
	return Result{}
}

func (c *Controller) handleDetail(ctx context.Context, v View, ev Event) Result {
	switch ev.Action {
	case ActionUp:
		c.scrollBy(-1)
	case ActionDown:
		c.scrollBy(1)
	case ActionPageUp:
		c.scrollBy(-c.pageSize)
	case ActionPageDown:
		c.scrollBy(c.pageSize)

	case ActionBack:
		c.mu.Lock()
		switch v.(type) {
		case CollectionProperties:
			c.detail = nil
			c.view = CollectionList{DB: v.Database()}
		case DocumentViewer:
			c.documents = nil
			c.view = CollectionList{DB: v.Database()}
		case GraphProperties:
			c.view = GraphList{DB: v.Database()}
		}
		c.scroll = 0
		c.mu.Unlock()

	case ActionRefresh:
		return c.refresh(ctx, ev)
	}
	return Result{}
}

// scrollBy moves the detail offset by delta within [0, scrollMax]
func (c *Controller) scrollBy(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scroll = saturatingAdd(c.scroll, delta)
	if c.scrollMax >= 0 && c.scroll > c.scrollMax {
		c.scroll = c.scrollMax
	}
}

// SetScrollLimit sets the largest scroll offset of the rendered detail
// content and clamps the current offset to it. A negative limit removes the bound.
func (c *Controller) SetScrollLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scrollMax = limit
	if limit >= 0 && c.scroll > limit {
		c.scroll = limit
	}
}

// jump suspends the graph list and enters the collection list with the
// cursor on target, or on the first row if target is not in the list
func (c *Controller) jump(ctx context.Context, from GraphList, target string, ev Event) Result {
	entries, err := c.gw.CollectionsWithCounts(ctx, from.DB)
	if err != nil {
		return c.fail(ev, err)
	}
	sorted := SortCollections(entries)

	idx := 0
	for i, e := range sorted {
		if e.Info.Name == target {
			idx = i
			break
		}
	}

	c.mu.Lock()
	c.stack.Push(from, c.graphRow)
	c.collections = sorted
	c.collIndex = idx
	c.scroll = 0
	c.view = CollectionList{DB: from.DB}
	c.lastErr = nil
	c.mu.Unlock()
	return Result{}
}

// sample fetches a document sample and enters the document viewer
func (c *Controller) sample(ctx context.Context, database, collection string, limit int) Result {
	sample, err := c.gw.SampleDocuments(ctx, database, collection, limit)
	if err != nil {
		return c.fail(Key(ActionConfirm), err)
	}

	c.mu.Lock()
	c.documents = sample
	c.scroll = 0
	c.view = DocumentViewer{DB: database, Collection: collection}
	c.lastErr = nil
	c.mu.Unlock()
	return Result{}
}

// refresh re-fetches the current view's dataset and clamps its selection
func (c *Controller) refresh(ctx context.Context, ev Event) Result {
	view := c.view
	install, total, err := c.fetchFor(ctx, view)
	if err != nil {
		if view.Kind() == KindDatabaseList {
			c.mu.Lock()
			c.accessible = false
			c.mu.Unlock()
		}
		return c.fail(ev, err)
	}

	c.mu.Lock()
	install()
	c.setSelection(view, Clamp(c.selection(view), total()))
	// A graph dropped on the server leaves nothing to show
	if gp, ok := view.(GraphProperties); ok && !c.hasGraph(gp.Graph) {
		c.scroll = 0
		c.view = GraphList{DB: gp.DB}
	}
	c.lastErr = nil
	c.mu.Unlock()
	return Result{}
}

// hasGraph reports whether name is in the loaded graph list; mu held
func (c *Controller) hasGraph(name string) bool {
	for _, g := range c.graphs {
		if g.Name == name {
			return true
		}
	}
	return false
}

// fetchFor loads the dataset backing a view. The returned install function
// must be called with mu held; total reports the row count after install.
func (c *Controller) fetchFor(ctx context.Context, view View) (install func(), total func() int, err error) {
	switch v := view.(type) {
	case DatabaseList:
		summaries, err := c.gw.DatabaseSummaries(ctx)
		if err != nil {
			return nil, nil, err
		}
		return func() {
			c.accessible = true
			c.databases = summaries
		}, func() int { return len(c.databases) }, nil

	case CollectionList:
		entries, err := c.gw.CollectionsWithCounts(ctx, v.DB)
		if err != nil {
			return nil, nil, err
		}
		sorted := SortCollections(entries)
		return func() { c.collections = sorted }, func() int { return len(c.collections) }, nil

	case GraphList, GraphProperties:
		graphs, err := c.gw.Graphs(ctx, v.Database())
		if err != nil {
			return nil, nil, err
		}
		return func() { c.installGraphs(graphs) }, func() int { return c.graphIndex.Len() }, nil

	case CollectionProperties:
		detail, err := c.gw.CollectionDetail(ctx, v.DB, v.Collection)
		if err != nil {
			return nil, nil, err
		}
		return func() { c.detail = detail }, func() int { return 0 }, nil

	case DocumentViewer:
		limit := DefaultSampleSize
		if c.documents != nil {
			limit = c.documents.Limit
		}
		sample, err := c.gw.SampleDocuments(ctx, v.DB, v.Collection, limit)
		if err != nil {
			return nil, nil, err
		}
		return func() { c.documents = sample }, func() int { return 0 }, nil
	}
	return func() {}, func() int { return 0 }, nil
}

// installGraphs replaces the graph list and rebuilds its row index; mu held
func (c *Controller) installGraphs(graphs []types.GraphSummary) {
	c.graphs = graphs
	c.graphIndex = NewGraphIndex(graphs)
	c.graphRow = Clamp(c.graphRow, c.graphIndex.Len())
}

func (c *Controller) selection(view View) int {
	switch view.(type) {
	case DatabaseList:
		return c.dbIndex
	case CollectionList:
		return c.collIndex
	case GraphList:
		return c.graphRow
	}
	return 0
}

func (c *Controller) setSelection(view View, index int) {
	switch view.(type) {
	case DatabaseList:
		c.dbIndex = index
	case CollectionList:
		c.collIndex = index
	case GraphList:
		c.graphRow = index
	}
}

// moveCursor applies a navigation action: single steps wrap, pages clamp
func (c *Controller) moveCursor(cursor, total int, a Action) int {
	switch a {
	case ActionDown:
		return Next(cursor, total)
	case ActionUp:
		return Prev(cursor, total)
	case ActionPageDown:
		return Clamp(cursor+c.pageSize, total)
	case ActionPageUp:
		return Clamp(cursor-c.pageSize, total)
	}
	return cursor
}

func (c *Controller) fail(ev Event, err error) Result {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	c.logger.Warn("fetch failed, staying on current view",
		zap.Stringer("view", c.view.Kind()),
		zap.String("database", c.view.Database()),
		zap.Stringer("action", ev.Action),
		zap.Error(err),
	)
	return Result{Err: err}
}

// saturatingAdd adds delta to a non-negative offset without going below zero or overflowing
func saturatingAdd(offset, delta int) int {
	if delta < 0 {
		if offset+delta < 0 {
			return 0
		}
		return offset + delta
	}
	if offset > math.MaxInt-delta {
		return math.MaxInt
	}
	return offset + delta
}

// SortCollections orders non-system collections by name, then system collections by name
func SortCollections(entries []types.CollectionEntry) []types.CollectionEntry {
	out := make([]types.CollectionEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Info, out[j].Info
		if a.IsSystem != b.IsSystem {
			return !a.IsSystem
		}
		return a.Name < b.Name
	})
	return out
}
