package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/keybinds"
	"github.com/arangotui/arangotui/internal/types"
)

// Config carries everything the TUI needs from startup
type Config struct {
	Controller *browser.Controller
	Keybinds   *keybinds.Registry
	// History may be nil when history is disabled
	History *history.Manager
	Logger  *zap.Logger

	Server   types.ServerVersion
	GAE      *types.GAEVersion
	GAEError error
	Endpoint string
	Version  string

	MessageTimeout time.Duration
}

// New creates a new TUI model on the main menu
func New(ctx context.Context, cfg Config) (Model, error) {
	if cfg.Controller == nil {
		return Model{}, fmt.Errorf("browser controller is required")
	}
	if cfg.Keybinds == nil {
		cfg.Keybinds = keybinds.NewDefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:            ctx,
		ctrl:           cfg.Controller,
		keybinds:       cfg.Keybinds,
		historyManager: cfg.History,
		historyState:   NewHistoryState(),
		logger:         cfg.Logger,
		mode:           ModeMainMenu,
		version:        cfg.Version,
		server:         cfg.Server,
		gae:            cfg.GAE,
		gaeErr:         cfg.GAEError,
		endpoint:       cfg.Endpoint,
		detailView:     viewport.New(80, 20),
		helpView:       viewport.New(80, 20),
		filterInput:    newInput("JMESPath expression or $(shell command)"),
		searchInput:    newInput("name"),
		messageTimeout: cfg.MessageTimeout,
	}

	return m, nil
}

// newInput builds a single-line input with a steady cursor
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Blur()
	return ti
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, cfg Config) error {
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}

	return nil
}
