package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerMainMenuBindings(r)
	registerListBindings(r, ContextDatabaseList)
	registerListBindings(r, ContextCollectionList)
	registerListBindings(r, ContextGraphList)
	registerCollectionListBindings(r)
	registerGraphListBindings(r)
	registerViewerBindings(r)
	registerSampleInputBindings(r)
	registerTextInputBindings(r)
	registerHelpBindings(r)
	registerHistoryBindings(r)
	registerModalBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerMainMenuBindings(r *Registry) {
	r.RegisterMultiple(ContextMainMenu, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextMainMenu, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextMainMenu, "enter", ActionActivate)
	r.RegisterMultiple(ContextMainMenu, []string{"q", "esc"}, ActionQuit)
	r.Register(ContextMainMenu, "H", ActionOpenHistory)
	r.Register(ContextMainMenu, "?", ActionOpenHelp)
}

// registerListBindings sets up the bindings shared by the three browser lists
func registerListBindings(r *Registry, ctx Context) {
	r.RegisterMultiple(ctx, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ctx, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ctx, "pgup", ActionPageUp)
	r.Register(ctx, "pgdown", ActionPageDown)
	r.Register(ctx, "home", ActionGoToTop)
	r.RegisterMultiple(ctx, []string{"end", "G"}, ActionGoToBottom)
	r.Register(ctx, "enter", ActionActivate)
	r.RegisterMultiple(ctx, []string{"esc", "q"}, ActionBack)
	r.Register(ctx, "r", ActionRefresh)
	r.Register(ctx, "/", ActionOpenSearch)
	r.Register(ctx, "?", ActionOpenHelp)
}

func registerCollectionListBindings(r *Registry) {
	r.Register(ContextCollectionList, "g", ActionOpenGraphs)
	r.Register(ContextCollectionList, "d", ActionSampleDocuments)
}

func registerGraphListBindings(r *Registry) {
	r.Register(ContextGraphList, "v", ActionJumpToVertex)
}

// registerViewerBindings sets up the scrollable detail views
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextViewer, []string{"esc", "q"}, ActionBack)
	r.Register(ContextViewer, "r", ActionRefresh)
	r.Register(ContextViewer, "J", ActionFilterContent)
	r.Register(ContextViewer, "x", ActionClearFilter)
	r.Register(ContextViewer, "b", ActionBookmarkFilter)
	r.Register(ContextViewer, "c", ActionCopyToClipboard)
	r.Register(ContextViewer, "?", ActionOpenHelp)
}

func registerSampleInputBindings(r *Registry) {
	r.Register(ContextSampleInput, "enter", ActionTextSubmit)
	r.Register(ContextSampleInput, "esc", ActionTextCancel)
	r.Register(ContextSampleInput, "backspace", ActionTextBackspace)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.Register(ContextTextInput, "up", ActionBookmarkPrev)
	r.Register(ContextTextInput, "down", ActionBookmarkNext)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}

func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "q", "H"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "pgup", ActionPageUp)
	r.Register(ContextHistory, "pgdown", ActionPageDown)
	r.Register(ContextHistory, "r", ActionRefresh)
	r.Register(ContextHistory, "C", ActionHistoryClear)
}

func registerModalBindings(r *Registry) {
	r.RegisterMultiple(ContextModal, []string{"esc", "q", "enter"}, ActionCloseModal)
}
