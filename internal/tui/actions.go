package tui

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/filter"
)

// startBrowsing enters the browser and loads the database list
func (m *Model) startBrowsing() tea.Cmd {
	m.mode = ModeBrowser
	m.busy = true
	m.resetDetail()
	m.setStatusMessage("Loading databases...")

	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return databasesLoadedMsg{err: ctrl.Load(ctx)}
	}
}

// sendEvent hands one event to the controller. Events that reach the
// server run as a command; everything else is applied immediately.
func (m *Model) sendEvent(ev browser.Event) tea.Cmd {
	if m.busy {
		return nil
	}

	if m.ctrl.WillFetch(ev) {
		m.busy = true
		m.statusMsg = "Loading..."
		ctrl, ctx := m.ctrl, m.ctx
		return func() tea.Msg {
			return browserResultMsg{ev: ev, res: ctrl.Handle(ctx, ev)}
		}
	}

	return m.applyResult(ev, m.ctrl.Handle(m.ctx, ev))
}

// applyResult updates the screen after the controller handled an event
func (m *Model) applyResult(ev browser.Event, res browser.Result) tea.Cmd {
	m.busy = false
	if m.statusMsg == "Loading..." {
		m.statusMsg = ""
	}

	if res.Exit {
		m.mode = ModeMainMenu
		m.resetDetail()
		return nil
	}

	if res.Err != nil {
		return m.setErrorMessage(describeFetchError(res.Err))
	}

	if res.Changed || ev.Action == browser.ActionRefresh {
		m.errorMsg = ""
		m.fullErrorMsg = ""
		if res.Changed {
			m.filterExpr = ""
		}
		m.rebuildDetail()
	}

	m.detailView.SetYOffset(m.ctrl.Snapshot().Scroll)

	if ev.Action == browser.ActionRefresh {
		return m.setStatusMessage("Refreshed")
	}
	return nil
}

// resetDetail drops the rendered detail content
func (m *Model) resetDetail() {
	m.filterExpr = ""
	m.detailContent = ""
	m.detailView.SetContent("")
	m.detailView.GotoTop()
}

// rebuildDetail renders the JSON of the active detail view, applying the filter
func (m *Model) rebuildDetail() {
	snap := m.ctrl.Snapshot()
	if !browser.IsDetail(snap.View) {
		m.detailContent = ""
		m.detailView.SetContent("")
		return
	}

	content, err := detailJSON(snap)
	if err != nil {
		m.detailContent = ""
		m.detailView.SetContent(styleError.Render(err.Error()))
		m.syncScrollLimit()
		return
	}

	if m.filterExpr != "" {
		filtered, err := filter.Apply(m.ctx, content, m.filterExpr)
		if err != nil {
			m.setErrorMessage(fmt.Sprintf("Filter failed: %v", err))
		} else {
			content = filtered
		}
	}

	m.detailContent = content
	m.detailView.SetContent(highlightJSON(content))
	m.syncScrollLimit()
}

// syncScrollLimit hands the viewport's scroll bound to the controller and
// lines the viewport up with the resulting offset
func (m *Model) syncScrollLimit() {
	limit := max(0, m.detailView.TotalLineCount()-m.detailView.Height+m.detailView.Style.GetVerticalFrameSize())
	m.ctrl.SetScrollLimit(limit)
	m.detailView.SetYOffset(m.ctrl.Snapshot().Scroll)
}

// detailJSON returns the indented JSON shown by a detail view
func detailJSON(s browser.Snapshot) (string, error) {
	var payload any

	switch s.View.(type) {
	case browser.CollectionProperties:
		if s.Detail == nil {
			return "", fmt.Errorf("no collection properties loaded")
		}
		payload = s.Detail
	case browser.DocumentViewer:
		if s.Documents == nil {
			return "", fmt.Errorf("no documents loaded")
		}
		payload = s.Documents.Documents
	case browser.GraphProperties:
		g, ok := s.SelectedGraph()
		if !ok {
			return "", fmt.Errorf("graph not found in the loaded list")
		}
		payload = g
	default:
		return "", fmt.Errorf("%s has no JSON content", s.View.Kind())
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format content: %w", err)
	}
	return string(data), nil
}

// applyFilter sets or replaces the content filter of the detail view
func (m *Model) applyFilter(expr string) tea.Cmd {
	if expr != "" && !filter.IsShellCommand(expr) && !filter.IsValidJMESPath(expr) {
		return m.setErrorMessage(fmt.Sprintf("Invalid JMESPath expression: %s", expr))
	}

	m.filterExpr = expr
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.rebuildDetail()
	m.detailView.GotoTop()
	if expr == "" {
		return m.setStatusMessage("Filter cleared")
	}
	return m.setStatusMessage("Filter applied: " + expr)
}

// openFilter focuses the filter input and loads the saved filters
func (m *Model) openFilter() {
	m.filterInput.SetValue(m.filterExpr)
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
	m.mode = ModeFilter

	m.bookmarks = nil
	m.bookmarkIndex = -1
	if m.historyManager == nil {
		return
	}
	bookmarks, err := m.historyManager.Bookmarks("")
	if err != nil {
		m.logger.Warn("failed to load filter bookmarks", zap.Error(err))
		return
	}
	m.bookmarks = bookmarks
}

// cycleBookmark replaces the filter input with an older (+1) or newer (-1)
// saved filter; moving past the newest restores the active filter
func (m *Model) cycleBookmark(delta int) {
	if len(m.bookmarks) == 0 {
		return
	}

	idx := m.bookmarkIndex + delta
	if idx >= len(m.bookmarks) {
		idx = len(m.bookmarks) - 1
	}
	if idx < -1 {
		idx = -1
	}
	m.bookmarkIndex = idx

	if idx == -1 {
		m.filterInput.SetValue(m.filterExpr)
	} else {
		m.filterInput.SetValue(m.bookmarks[idx].Expression)
	}
	m.filterInput.CursorEnd()
}

// bookmarkFilter saves the active filter expression
func (m *Model) bookmarkFilter() tea.Cmd {
	if m.filterExpr == "" {
		return m.setErrorMessage("No active filter to bookmark")
	}
	if m.historyManager == nil {
		return m.setErrorMessage("Bookmarks are stored with history (history.enabled in config.yaml)")
	}

	added, err := m.historyManager.SaveBookmark(m.filterExpr)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to bookmark filter: %v", err))
	}
	if !added {
		return m.setStatusMessage("Filter already bookmarked: " + m.filterExpr)
	}
	return m.setStatusMessage("Bookmarked filter: " + m.filterExpr)
}

// copyDetail copies the visible JSON to the clipboard
func (m *Model) copyDetail() tea.Cmd {
	if m.detailContent == "" {
		return m.setErrorMessage("Nothing to copy")
	}
	if err := clipboard.WriteAll(m.detailContent); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.setErrorMessage(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.setStatusMessage("Content copied to clipboard")
}

// searchSelect moves the list cursor to the best fuzzy match of pattern
func (m *Model) searchSelect(pattern string) bool {
	if pattern == "" {
		return false
	}
	idx, ok := filter.BestMatch(pattern, m.ctrl.Snapshot().RowLabels())
	if !ok {
		return false
	}
	return m.ctrl.Select(idx)
}

// selectEdge moves the list cursor to the first or last row
func (m *Model) selectEdge(last bool) {
	labels := m.ctrl.Snapshot().RowLabels()
	if len(labels) == 0 {
		return
	}
	if last {
		m.ctrl.Select(len(labels) - 1)
		return
	}
	m.ctrl.Select(0)
}

// openHistory shows the fetch history modal
func (m *Model) openHistory() tea.Cmd {
	if m.historyManager == nil {
		return m.setErrorMessage("History is disabled (history.enabled in config.yaml)")
	}
	m.mode = ModeHistory
	m.updateHistoryView()
	return m.loadHistory()
}

// loadHistory reads recent entries and per-operation stats for the current endpoint
func (m *Model) loadHistory() tea.Cmd {
	mgr, endpoint := m.historyManager, m.endpoint
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := mgr.Load(endpoint, HistoryLoadLimit)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		stats, err := mgr.Stats(endpoint)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{entries: entries, stats: stats}
	}
}

// clearHistory deletes the history of the current endpoint
func (m *Model) clearHistory() tea.Cmd {
	mgr, endpoint := m.historyManager, m.endpoint
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		return historyClearedMsg{err: mgr.Clear(endpoint)}
	}
}

// openNotice shows an informational modal
func (m *Model) openNotice(title, text string) {
	m.returnMode = m.mode
	m.noticeTitle = title
	m.noticeText = text
	m.mode = ModeNotice
}

// gaeNotice describes the Graph Analytics Engine connection
func (m *Model) gaeNotice() string {
	switch {
	case m.gae != nil:
		return fmt.Sprintf("Connected to GAE %s (API v%d-v%d).\n\nGraph Analytics Engine jobs are not implemented yet.",
			m.gae.Version, m.gae.APIMinVersion, m.gae.APIMaxVersion)
	case m.gaeErr != nil:
		return fmt.Sprintf("GAE unavailable: %v", m.gaeErr)
	}
	return "No GAE endpoint configured. Use --gae or the gae field of a profile."
}
