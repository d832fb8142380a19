package tui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/arangotui/arangotui/internal/config"
	"github.com/arangotui/arangotui/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// chroma settings for JSON content
const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// renderMainMenu renders the startup menu with the handshake results
func (m Model) renderMainMenu() string {
	var lines []string

	lines = append(lines, styleTitle.Render(fmt.Sprintf("ArangoDB %s (%s)", m.server.Version, m.server.License)))
	lines = append(lines, styleSubtle.Render(m.endpoint))

	switch {
	case m.gae != nil:
		lines = append(lines, styleSuccess.Render("GAE "+m.gae.Version))
	case m.gaeErr != nil:
		lines = append(lines, styleWarning.Render("GAE unavailable"))
	default:
		lines = append(lines, styleSubtle.Render("GAE not configured"))
	}
	lines = append(lines, "")

	for i, entry := range menuOrder {
		label := "  " + menuLabels[entry]
		if i == m.menuIndex {
			label = styleSelected.Render("> " + menuLabels[entry])
		}
		lines = append(lines, label)
	}

	lines = append(lines, "")
	lines = append(lines, styleSubtle.Render(fmt.Sprintf("%s select | %s history | %s help | %s quit",
		m.bindingHint(keybinds.ContextMainMenu, keybinds.ActionActivate),
		m.bindingHint(keybinds.ContextMainMenu, keybinds.ActionOpenHistory),
		m.bindingHint(keybinds.ContextMainMenu, keybinds.ActionOpenHelp),
		m.bindingHint(keybinds.ContextMainMenu, keybinds.ActionQuit),
	)))

	menu := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, menu)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	left := "arangotui"
	if m.version != "" {
		left += " " + m.version
	}

	right := ""
	switch {
	case m.busy:
		right = styleWarning.Render("Loading...")
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = m.statusMsg
	default:
		right = styleSubtle.Render("? for help | ctrl+c to quit")
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// bindingHint returns the first key bound to action, for footers
func (m Model) bindingHint(ctx keybinds.Context, action keybinds.Action) string {
	keys := m.keybinds.GetBinding(ctx, action)
	if len(keys) == 0 {
		return "-"
	}
	return keys[0]
}

// addCursor adds a visible cursor (█) to a text string
func addCursor(text string) string {
	return text + "█"
}

// fitCell truncates or pads s to exactly width display cells
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		if width < 3 {
			return runewidth.Truncate(s, width, "")
		}
		return runewidth.Truncate(s, width, "...")
	}
	return runewidth.FillRight(s, width)
}

// highlightJSON colours JSON for the terminal, falling back to plain text
func highlightJSON(content string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, content, "json", highlightFormatter, highlightStyle); err != nil {
		return content
	}
	return sb.String()
}

// listWindow returns the slice bounds of a list of total rows so that
// selected stays visible in height rows
func listWindow(selected, total, height int) (start, end int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start = selected - height + 1
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

// configHint names the config file users should edit
func configHint() string {
	if path := config.GetConfigFilePath(); path != "" {
		return path
	}
	return "~/.arangotui/config.yaml"
}

// updateViewport resizes the viewports after a window change
func (m *Model) updateViewport() {
	m.detailView.Width = m.width - 4
	m.detailView.Height = max(m.height-BrowserChromeLines, 1)

	m.helpView.Width = m.width - ModalWidthMarginNarrow - 4
	m.helpView.Height = max(m.height-ModalHeightMarginMed-ModalOverheadLines-ModalFooterLines, 1)
	m.updateHelpView()

	view := m.historyState.GetView()
	view.Width = m.width - ModalWidthMargin - 4
	view.Height = max(m.height-ModalHeightMargin-ModalOverheadLines-ModalFooterLines, 1)
	m.historyState.SetView(view)
	m.updateHistoryView()

	m.syncScrollLimit()
}
