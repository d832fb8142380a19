package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/keybinds"
	"github.com/arangotui/arangotui/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeMainMenu Mode = iota
	ModeBrowser
	ModeSearch
	ModeFilter
	ModeHelp
	ModeHistory
	ModeHistoryClearConfirm
	ModeNotice
)

// menuEntry is one line of the main menu
type menuEntry int

const (
	menuBrowse menuEntry = iota
	menuGAE
	menuOptions
	menuQuit
)

var menuLabels = map[menuEntry]string{
	menuBrowse:  "Browse databases",
	menuGAE:     "Graph Analytics Engine",
	menuOptions: "Options",
	menuQuit:    "Quit",
}

var menuOrder = []menuEntry{menuBrowse, menuGAE, menuOptions, menuQuit}

// Model represents the TUI state
type Model struct {
	// Core state
	ctx            context.Context
	ctrl           *browser.Controller
	keybinds       *keybinds.Registry
	historyManager *history.Manager
	historyState   *HistoryState
	logger         *zap.Logger
	mode           Mode
	version        string

	// Handshake results
	server   types.ServerVersion
	gae      *types.GAEVersion
	gaeErr   error
	endpoint string

	// Main menu
	menuIndex int

	// busy is set while a browser fetch runs; browser keys are ignored meanwhile
	busy bool

	// Detail views
	detailView    viewport.Model
	detailContent string // plain JSON after filtering, used for copy
	filterExpr    string

	// Saved filters recalled while the filter input is open, newest first
	bookmarks     []types.FilterBookmark
	bookmarkIndex int

	// Single-line inputs
	filterInput  textinput.Model
	searchInput  textinput.Model
	searchOrigin int

	// Modals
	helpView    viewport.Model
	helpContext keybinds.Context
	returnMode  Mode
	noticeTitle string
	noticeText  string

	// UI state
	width          int
	height         int
	statusMsg      string
	errorMsg       string // Truncated error for footer
	fullErrorMsg   string
	fullStatusMsg  string
	messageTimeout time.Duration
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cleanup closes the history database
func (m *Model) Cleanup() {
	if m.historyManager != nil {
		if err := m.historyManager.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing history database: %v\n", err)
		}
		m.historyManager = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	// Mouse events are captured so the terminal does not scroll; navigation stays keyboard-only
	case tea.MouseMsg:

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case databasesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			cmd = m.setErrorMessage(describeFetchError(msg.err))
			break
		}
		m.errorMsg = ""
		m.fullErrorMsg = ""
		cmd = m.setStatusMessage(fmt.Sprintf("Loaded %d databases", len(m.ctrl.Snapshot().Databases)))

	case browserResultMsg:
		cmd = m.applyResult(msg.ev, msg.res)

	case historyLoadedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(msg.err.Error())
			break
		}
		m.historyState.SetEntries(msg.entries)
		m.historyState.SetStats(msg.stats)
		m.historyState.SetIndex(0)
		m.updateHistoryView()
		if len(msg.entries) > 0 {
			cmd = m.setStatusMessage(fmt.Sprintf("Loaded %d history entries", len(msg.entries)))
		}

	case historyClearedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(msg.err.Error())
			break
		}
		m.historyState.SetEntries(nil)
		m.historyState.SetStats(nil)
		m.historyState.SetIndex(0)
		m.updateHistoryView()
		cmd = m.setStatusMessage("History cleared")

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
		m.fullErrorMsg = ""
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeMainMenu:
		return m.renderMainMenu()
	case ModeHelp:
		return m.renderHelp()
	case ModeHistory:
		return m.renderHistory()
	case ModeHistoryClearConfirm:
		return m.renderHistoryClearConfirmation()
	case ModeNotice:
		return m.renderNotice()
	default:
		return m.renderBrowser()
	}
}

// Custom message types
type databasesLoadedMsg struct {
	err error
}

type browserResultMsg struct {
	ev  browser.Event
	res browser.Result
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
	stats   []history.OperationStats
	err     error
}

type historyClearedMsg struct {
	err error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

// truncateMessage shortens a footer message to MaxFooterMessage characters
func truncateMessage(msg string) string {
	if len(msg) > MaxFooterMessage {
		return msg[:MaxFooterMessage-3] + "..."
	}
	return msg
}

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.fullStatusMsg = msg
	m.statusMsg = truncateMessage(msg)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	return nil
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	m.errorMsg = truncateMessage(msg)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})
	}
	return nil
}
