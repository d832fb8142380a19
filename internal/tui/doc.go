/*
Package tui implements the terminal user interface of arangotui.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - model.go: Model struct, modes, messages and Update
  - keys.go: key routing through the keybinds registry
  - actions.go: side effects (browser fetches, history, clipboard, filter)
  - render.go, render_browser.go, modals.go: presentation

# Browser

All database navigation lives in browser.Controller. The TUI translates
keys into browser events and renders the controller snapshot. Events that
will hit the server run as a tea.Cmd; while one is in flight the model is
busy and ignores further browser keys, so events reach the controller one
at a time.

# Modes

  - ModeMainMenu: startup menu with server and GAE version
  - ModeBrowser: database, collection and graph lists plus detail views
  - ModeSearch / ModeFilter: single-line inputs for fuzzy find and JMESPath
  - ModeHelp, ModeHistory, ModeHistoryClearConfirm, ModeNotice: modals

The sample-count prompt is not a TUI mode: it is the controller's input
modal, rendered on top of the browser while the snapshot reports it active.
*/
package tui
