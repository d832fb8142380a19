package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal         Context = "global"          // Available everywhere
	ContextMainMenu       Context = "main_menu"       // Startup menu
	ContextDatabaseList   Context = "database_list"   // Database browser
	ContextCollectionList Context = "collection_list" // Collections of one database
	ContextGraphList      Context = "graph_list"      // Named graphs with edge definitions
	ContextViewer         Context = "viewer"          // Properties and document views
	ContextSampleInput    Context = "sample_input"    // Document count modal
	ContextTextInput      Context = "text_input"      // Search and filter inputs
	ContextHelp           Context = "help"            // Help viewer
	ContextHistory        Context = "history"         // Fetch history viewer
	ContextModal          Context = "modal"           // Informational modals
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Leave the current screen
	ActionQuitForce Action = "quit_force" // Exit immediately (ctrl+c)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Browser actions
	ActionActivate        Action = "activate"         // Open the selected row
	ActionBack            Action = "back"             // Return to the parent view
	ActionOpenGraphs      Action = "open_graphs"      // Graph list of the database
	ActionSampleDocuments Action = "sample_documents" // Ask for a count, then sample
	ActionJumpToVertex    Action = "jump_to_vertex"   // Jump to the edge's from-collection
	ActionRefresh         Action = "refresh"          // Re-fetch the current view

	// Content actions
	ActionOpenSearch      Action = "open_search"       // Fuzzy find in the current list
	ActionFilterContent   Action = "filter_content"    // JMESPath filter on the shown JSON
	ActionClearFilter     Action = "clear_filter"      // Drop the active filter
	ActionBookmarkFilter  Action = "bookmark_filter"   // Save the active filter
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy the shown JSON
	ActionOpenHelp        Action = "open_help"
	ActionOpenHistory     Action = "open_history"
	ActionHistoryClear    Action = "history_clear"

	// Text input actions
	ActionTextBackspace Action = "text_backspace"
	ActionTextSubmit    Action = "text_submit"
	ActionTextCancel    Action = "text_cancel"
	ActionBookmarkPrev  Action = "bookmark_prev" // Older saved filter
	ActionBookmarkNext  Action = "bookmark_next" // Newer saved filter

	// Modal actions
	ActionCloseModal Action = "close_modal"

	ActionNoOp Action = "noop" // Ignore key
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionActivate:        {ActionActivate, "Open selection", "Browser"},
	ActionBack:            {ActionBack, "Back", "Browser"},
	ActionOpenGraphs:      {ActionOpenGraphs, "Show graphs", "Browser"},
	ActionSampleDocuments: {ActionSampleDocuments, "Sample documents", "Browser"},
	ActionJumpToVertex:    {ActionJumpToVertex, "Jump to vertex collection", "Browser"},
	ActionRefresh:         {ActionRefresh, "Refresh", "Browser"},
	ActionOpenSearch:      {ActionOpenSearch, "Find by name", "Content"},
	ActionFilterContent:   {ActionFilterContent, "JMESPath filter", "Content"},
	ActionClearFilter:     {ActionClearFilter, "Clear filter", "Content"},
	ActionBookmarkFilter:  {ActionBookmarkFilter, "Bookmark filter", "Content"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy to clipboard", "Content"},
	ActionOpenHelp:        {ActionOpenHelp, "Help", "Information"},
	ActionOpenHistory:     {ActionOpenHistory, "Fetch history", "Information"},
	ActionHistoryClear:    {ActionHistoryClear, "Clear history", "Information"},
	ActionTextBackspace:   {ActionTextBackspace, "Delete character", "Input"},
	ActionTextSubmit:      {ActionTextSubmit, "Submit", "Input"},
	ActionTextCancel:      {ActionTextCancel, "Cancel", "Input"},
	ActionBookmarkPrev:    {ActionBookmarkPrev, "Previous saved filter", "Input"},
	ActionBookmarkNext:    {ActionBookmarkNext, "Next saved filter", "Input"},
	ActionCloseModal:      {ActionCloseModal, "Close", "Modal"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether the action is one the application handles
func IsKnownAction(action Action) bool {
	if action == ActionNoOp {
		return true
	}
	_, ok := actionInfos[action]
	return ok
}
