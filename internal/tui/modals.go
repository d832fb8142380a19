package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/config"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/keybinds"
)

// renderSampleModal renders the document count prompt of the controller
func (m Model) renderSampleModal(snap browser.Snapshot) string {
	lines := []string{
		styleTitle.Render("Sample documents"),
		"",
		"Collection: " + snap.ModalCollection,
		"",
		"Number of documents: " + addCursor(snap.ModalBuffer),
		"",
		styleSubtle.Render(fmt.Sprintf("%s load | %s cancel | empty for default",
			m.bindingHint(keybinds.ContextSampleInput, keybinds.ActionTextSubmit),
			m.bindingHint(keybinds.ContextSampleInput, keybinds.ActionTextCancel))),
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Width(SampleModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, modal)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := fmt.Sprintf("↑/↓ %s/%s: scroll | %s: close",
		m.bindingHint(keybinds.ContextHelp, keybinds.ActionNavigateUp),
		m.bindingHint(keybinds.ContextHelp, keybinds.ActionNavigateDown),
		m.bindingHint(keybinds.ContextHelp, keybinds.ActionCloseModal))

	// Footer is outside the viewport so it stays visible
	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - ModalWidthMarginNarrow).
		Height(m.height - ModalHeightMarginMed).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}

// updateHelpView refreshes the help viewport for the help context
func (m *Model) updateHelpView() {
	ctx := m.helpContext
	if ctx == "" {
		ctx = keybinds.ContextMainMenu
	}
	m.helpView.SetContent(m.helpContent(ctx))
}

// helpContent lists the bindings of ctx, grouped by category
func (m *Model) helpContent(ctx keybinds.Context) string {
	byCategory := make(map[string][]string)
	var categories []string
	for _, b := range m.keybinds.ListBindings(ctx) {
		info := keybinds.GetActionInfo(b.Action)
		if _, seen := byCategory[info.Category]; !seen {
			categories = append(categories, info.Category)
		}
		byCategory[info.Category] = append(byCategory[info.Category],
			fmt.Sprintf("  %-10s %s", b.Key, info.Description))
	}

	var sb strings.Builder
	sb.WriteString(styleSubtle.Render(fmt.Sprintf("Context: %s", ctx)) + "\n")
	for _, cat := range categories {
		sb.WriteString("\n" + styleTitle.Render(cat) + "\n")
		for _, line := range byCategory[cat] {
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n" + styleSubtle.Render("Overrides: "+keybindsHint()))
	return sb.String()
}

// renderHistory renders the fetch history modal
func (m Model) renderHistory() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	entries := m.historyState.GetEntries()
	footerText := fmt.Sprintf("↑/↓: Navigate | %s: Refresh | %s: Clear | %s: Close",
		m.bindingHint(keybinds.ContextHistory, keybinds.ActionRefresh),
		m.bindingHint(keybinds.ContextHistory, keybinds.ActionHistoryClear),
		m.bindingHint(keybinds.ContextHistory, keybinds.ActionCloseModal))
	if len(entries) > 0 {
		footerText += fmt.Sprintf(" [%d/%d]", m.historyState.GetIndex()+1, len(entries))
	}

	view := m.historyState.GetView()
	fullContent := styleTitle.Render("Fetch History") + "\n\n" + view.View() + "\n\n" + styleSubtle.Render(footerText)

	historyView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(modalWidth).
		Height(modalHeight).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, historyView)
}

// updateHistoryView rebuilds the history viewport: per-operation stats, then entries
func (m *Model) updateHistoryView() {
	view := m.historyState.GetView()
	entries := m.historyState.GetEntries()
	stats := m.historyState.GetStats()
	index := m.historyState.GetIndex()

	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString(styleSubtle.Render("No fetches recorded for " + m.endpoint))
		view.SetContent(sb.String())
		view.GotoTop()
		m.historyState.SetView(view)
		return
	}

	width := max(view.Width, 40)

	sb.WriteString(styleHeader.Render(fmt.Sprintf("%-20s %6s %6s %10s %10s %10s", "Operation", "Calls", "Failed", "Avg", "P95", "Max")) + "\n")
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("%-20s %6d %6d %8.1fms %8dms %8dms\n", s.Operation, s.Calls, s.Failures, s.AvgDurationMs, s.P95DurationMs, s.MaxDurationMs))
	}
	sb.WriteString("\n")

	statsLines := len(stats) + 2
	for i, e := range entries {
		line := fitCell(fmt.Sprintf("%-19s %-18s %-30s %6dms %s",
			e.Timestamp, e.Operation, history.Target(e), e.DurationMs, history.Status(e)), width)
		switch {
		case i == index:
			line = styleSelected.Render(line)
		case e.Error != "":
			line = styleError.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	view.SetContent(sb.String())

	// Keep the selected entry visible
	selectedLine := statsLines + index
	if selectedLine < view.YOffset {
		view.SetYOffset(selectedLine)
	} else if selectedLine >= view.YOffset+view.Height {
		view.SetYOffset(selectedLine - view.Height + 1)
	}
	m.historyState.SetView(view)
}

// historyPageSize is the number of entries moved by page up/down
func (m *Model) historyPageSize() int {
	return max(m.historyState.GetView().Height-1, 1)
}

// renderHistoryClearConfirmation asks before wiping the history
func (m Model) renderHistoryClearConfirmation() string {
	text := fmt.Sprintf("Delete %d history entries for %s?\n\n%s",
		len(m.historyState.GetEntries()), m.endpoint,
		styleSubtle.Render("y: delete | n/esc: cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Render(styleError.Render("Clear History") + "\n\n" + text)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderNotice renders an informational modal
func (m Model) renderNotice() string {
	footer := styleSubtle.Render(m.bindingHint(keybinds.ContextModal, keybinds.ActionCloseModal) + ": close")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(min(m.width-ModalWidthMarginNarrow, 70)).
		Padding(1, 2).
		Render(styleTitle.Render(m.noticeTitle) + "\n\n" + m.noticeText + "\n\n" + footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// keybindsHint names the keybinding overrides file
func keybindsHint() string {
	if config.KeybindsFile != "" {
		return config.KeybindsFile
	}
	return "~/.arangotui/keybinds.json"
}
