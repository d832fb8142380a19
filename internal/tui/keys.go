package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/keybinds"
)

// browserActions maps registry actions onto controller events
var browserActions = map[keybinds.Action]browser.Action{
	keybinds.ActionNavigateUp:      browser.ActionUp,
	keybinds.ActionNavigateDown:    browser.ActionDown,
	keybinds.ActionPageUp:          browser.ActionPageUp,
	keybinds.ActionPageDown:        browser.ActionPageDown,
	keybinds.ActionActivate:        browser.ActionActivate,
	keybinds.ActionBack:            browser.ActionBack,
	keybinds.ActionOpenGraphs:      browser.ActionOpenGraphs,
	keybinds.ActionSampleDocuments: browser.ActionSampleDocuments,
	keybinds.ActionJumpToVertex:    browser.ActionJumpToVertex,
	keybinds.ActionRefresh:         browser.ActionRefresh,
}

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	// Mode-specific handling
	switch m.mode {
	case ModeMainMenu:
		return m.handleMainMenuKeys(msg)
	case ModeBrowser:
		return m.handleBrowserKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleHistoryClearConfirmKeys(msg)
	case ModeNotice:
		return m.handleNoticeKeys(msg)
	}

	return nil
}

func (m *Model) handleMainMenuKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextMainMenu, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionNavigateUp:
		m.menuIndex = browser.Prev(m.menuIndex, len(menuOrder))
	case keybinds.ActionNavigateDown:
		m.menuIndex = browser.Next(m.menuIndex, len(menuOrder))
	case keybinds.ActionActivate:
		return m.activateMenu(menuOrder[m.menuIndex])
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionOpenHistory:
		return m.openHistory()
	case keybinds.ActionOpenHelp:
		m.openHelp(keybinds.ContextMainMenu)
	}
	return nil
}

func (m *Model) activateMenu(entry menuEntry) tea.Cmd {
	switch entry {
	case menuBrowse:
		return m.startBrowsing()
	case menuGAE:
		m.openNotice("Graph Analytics Engine", m.gaeNotice())
	case menuOptions:
		m.openNotice("Options", "Options are not implemented yet.\n\nEdit "+configHint()+" instead.")
	case menuQuit:
		m.Cleanup()
		return tea.Quit
	}
	return nil
}

// browserContext returns the keybinding context of the active browser view
func browserContext(v browser.View) keybinds.Context {
	switch v.Kind() {
	case browser.KindDatabaseList:
		return keybinds.ContextDatabaseList
	case browser.KindCollectionList:
		return keybinds.ContextCollectionList
	case browser.KindGraphList:
		return keybinds.ContextGraphList
	}
	return keybinds.ContextViewer
}

func (m *Model) handleBrowserKeys(msg tea.KeyMsg) tea.Cmd {
	if m.busy {
		return nil
	}

	snap := m.ctrl.Snapshot()
	if snap.ModalActive {
		return m.handleSampleInputKeys(msg)
	}

	ctx := browserContext(snap.View)
	action, ok := m.keybinds.Match(ctx, msg.String())
	if !ok {
		return nil
	}

	if ev, ok := browserActions[action]; ok {
		// Scrolling past the end of the content is not forwarded
		if ctx == keybinds.ContextViewer && m.detailView.AtBottom() &&
			(ev == browser.ActionDown || ev == browser.ActionPageDown) {
			return nil
		}
		return m.sendEvent(browser.Key(ev))
	}

	switch action {
	case keybinds.ActionGoToTop:
		m.selectEdge(false)
	case keybinds.ActionGoToBottom:
		m.selectEdge(true)
	case keybinds.ActionOpenSearch:
		m.searchOrigin = snap.Selection()
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.mode = ModeSearch
	case keybinds.ActionFilterContent:
		m.openFilter()
	case keybinds.ActionClearFilter:
		if m.filterExpr != "" {
			return m.applyFilter("")
		}
	case keybinds.ActionBookmarkFilter:
		return m.bookmarkFilter()
	case keybinds.ActionCopyToClipboard:
		return m.copyDetail()
	case keybinds.ActionOpenHelp:
		m.openHelp(ctx)
	}
	return nil
}

// handleSampleInputKeys feeds the controller's count modal
func (m *Model) handleSampleInputKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextSampleInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.sendEvent(browser.Key(browser.ActionConfirm))
		case keybinds.ActionTextCancel:
			return m.sendEvent(browser.Key(browser.ActionCancel))
		case keybinds.ActionTextBackspace:
			return m.sendEvent(browser.Key(browser.ActionBackspace))
		}
		return nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return m.sendEvent(browser.Char(msg.Runes[0]))
	}
	return nil
}

// handleSearchKeys moves the list cursor to the best match while typing
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.searchInput.Blur()
			m.mode = ModeBrowser
			if m.searchInput.Value() != "" && !m.searchSelect(m.searchInput.Value()) {
				return m.setStatusMessage("No match for " + m.searchInput.Value())
			}
			return nil
		case keybinds.ActionTextCancel:
			m.searchInput.Blur()
			m.ctrl.Select(m.searchOrigin)
			m.mode = ModeBrowser
			return nil
		}
	}

	m.searchInput, _ = m.searchInput.Update(msg)
	m.searchSelect(m.searchInput.Value())
	return nil
}

// handleFilterKeys edits the JMESPath filter of a detail view
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.filterInput.Blur()
			m.mode = ModeBrowser
			return m.applyFilter(m.filterInput.Value())
		case keybinds.ActionTextCancel:
			m.filterInput.Blur()
			m.mode = ModeBrowser
			return nil
		case keybinds.ActionBookmarkPrev:
			m.cycleBookmark(1)
			return nil
		case keybinds.ActionBookmarkNext:
			m.cycleBookmark(-1)
			return nil
		}
	}

	m.filterInput, _ = m.filterInput.Update(msg)
	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = m.returnMode
	case keybinds.ActionNavigateUp:
		m.helpView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.ScrollDown(1)
	}
	return nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHistory, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeMainMenu
	case keybinds.ActionNavigateUp:
		m.historyState.Move(-1)
		m.updateHistoryView()
	case keybinds.ActionNavigateDown:
		m.historyState.Move(1)
		m.updateHistoryView()
	case keybinds.ActionPageUp:
		m.historyState.Move(-m.historyPageSize())
		m.updateHistoryView()
	case keybinds.ActionPageDown:
		m.historyState.Move(m.historyPageSize())
		m.updateHistoryView()
	case keybinds.ActionRefresh:
		return m.loadHistory()
	case keybinds.ActionHistoryClear:
		if len(m.historyState.GetEntries()) > 0 {
			m.mode = ModeHistoryClearConfirm
		}
	}
	return nil
}

func (m *Model) handleHistoryClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeHistory
		return m.clearHistory()
	case "n", "N", "esc", "q":
		m.mode = ModeHistory
	}
	return nil
}

func (m *Model) handleNoticeKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextModal, msg.String()); ok && action == keybinds.ActionCloseModal {
		m.mode = m.returnMode
	}
	return nil
}

// openHelp shows the bindings of ctx and returns to the current mode on close
func (m *Model) openHelp(ctx keybinds.Context) {
	m.returnMode = m.mode
	m.helpContext = ctx
	m.updateHelpView()
	m.helpView.GotoTop()
	m.mode = ModeHelp
}
