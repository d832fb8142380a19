package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/keybinds"
	"github.com/arangotui/arangotui/internal/types"
)

// column is one table column of a browser list
type column struct {
	title string
	width int
}

// renderBrowser renders the active browser view from the controller snapshot
func (m Model) renderBrowser() string {
	snap := m.ctrl.Snapshot()
	if snap.ModalActive {
		return m.renderSampleModal(snap)
	}

	width := m.width - 4
	bodyHeight := max(m.height-BrowserChromeLines, 1)

	var title, body, footer string
	switch v := snap.View.(type) {
	case browser.DatabaseList:
		title = v.Title()
		body = m.renderDatabaseList(snap, width, bodyHeight)
	case browser.CollectionList:
		title = collectionListTitle(v, snap.Collections)
		body = m.renderCollectionList(snap, width, bodyHeight)
	case browser.GraphList:
		title = fmt.Sprintf("%s (%d graphs)", v.Title(), len(snap.Graphs))
		body = m.renderGraphList(snap, width, bodyHeight)
	default:
		title = v.Title()
		if d, ok := v.(browser.DocumentViewer); ok && snap.Documents != nil {
			title = fmt.Sprintf("%s (%d of limit %d)", d.Title(), len(snap.Documents.Documents), snap.Documents.Limit)
		}
		body = m.detailView.View()
	}

	footer = m.renderBrowserFooter(snap)

	content := styleTitle.Render(title) + "\n\n" + body
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(m.width - 2).
		Height(m.height - 3).
		Render(content + "\n" + footer)

	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderStatusBar())
}

// collectionListTitle adds the collection and document totals to the title
func collectionListTitle(v browser.CollectionList, entries []types.CollectionEntry) string {
	var docs uint64
	for _, e := range entries {
		if e.Count != nil {
			docs += *e.Count
		}
	}
	return fmt.Sprintf("%s (%d collections, %d documents)", v.Title(), len(entries), docs)
}

// renderTable renders a header line and the visible rows, highlighting selected
func renderTable(cols []column, rows [][]string, selected, height int) string {
	var lines []string

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = fitCell(c.title, c.width)
	}
	lines = append(lines, styleHeader.Render(strings.Join(header, " ")))

	start, end := listWindow(selected, len(rows), height-1)
	for i := start; i < end; i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = fitCell(rows[i][j], c.width)
		}
		line := strings.Join(cells, " ")
		if i == selected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// nameWidth gives the first column what is left after the fixed columns
func nameWidth(total int, fixed ...int) int {
	w := total
	for _, f := range fixed {
		w -= f + 1
	}
	return max(w, 10)
}

func (m Model) renderDatabaseList(snap browser.Snapshot, width, height int) string {
	if !snap.Accessible {
		msg := "Database list not accessible"
		if snap.LastError != nil {
			msg += ": " + describeFetchError(snap.LastError)
		}
		return styleError.Render(msg) + "\n\n" + styleSubtle.Render(fmt.Sprintf("%s retry | %s back",
			m.bindingHint(keybinds.ContextDatabaseList, keybinds.ActionRefresh),
			m.bindingHint(keybinds.ContextDatabaseList, keybinds.ActionBack)))
	}
	if len(snap.Databases) == 0 {
		return styleSubtle.Render("No databases")
	}

	cols := []column{
		{"Database", nameWidth(width, 10, 10, 10)},
		{"Documents", 10},
		{"Edges", 10},
		{"System", 10},
	}

	rows := make([][]string, len(snap.Databases))
	for i, d := range snap.Databases {
		if !d.Accessible {
			rows[i] = []string{d.Name, "NO ACCESS", "", ""}
			continue
		}
		rows[i] = []string{
			d.Name,
			strconv.Itoa(d.DocCollections),
			strconv.Itoa(d.EdgeCollections),
			strconv.Itoa(d.SystemCollections),
		}
	}

	return renderTable(cols, rows, snap.DatabaseIndex, height)
}

func (m Model) renderCollectionList(snap browser.Snapshot, width, height int) string {
	if len(snap.Collections) == 0 {
		return styleSubtle.Render("No collections")
	}

	cols := []column{
		{"Collection", nameWidth(width, 8, 12, 6, 12)},
		{"Type", 8},
		{"Count", 12},
		{"System", 6},
		{"ID", 12},
	}

	rows := make([][]string, len(snap.Collections))
	for i, e := range snap.Collections {
		count := "?"
		if e.Count != nil {
			count = strconv.FormatUint(*e.Count, 10)
		}
		system := ""
		if e.Info.IsSystem {
			system = "yes"
		}
		rows[i] = []string{e.Info.Name, e.Info.TypeName(), count, system, e.Info.ID}
	}

	return renderTable(cols, rows, snap.CollectionIndex, height)
}

func (m Model) renderGraphList(snap browser.Snapshot, width, height int) string {
	rows := snap.GraphIndex.Rows()
	if len(rows) == 0 {
		return styleSubtle.Render("No graphs")
	}

	start, end := listWindow(snap.GraphRow, len(rows), height)
	var lines []string
	for i := start; i < end; i++ {
		line := fitCell(graphRowLabel(snap.Graphs, rows[i]), width)
		switch {
		case i == snap.GraphRow:
			line = styleSelected.Render(line)
		case rows[i].Kind == browser.RowGraph:
			line = styleTitle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// graphRowLabel formats one row of the flattened graph listing
func graphRowLabel(graphs []types.GraphSummary, row browser.GraphRow) string {
	switch row.Kind {
	case browser.RowGraph:
		g := graphs[row.Graph]
		var flags []string
		if g.IsSmart {
			flags = append(flags, "smart")
		}
		if g.IsDisjoint {
			flags = append(flags, "disjoint")
		}
		if len(g.OrphanCollections) > 0 {
			flags = append(flags, "orphans: "+strings.Join(g.OrphanCollections, ", "))
		}
		label := fmt.Sprintf("%s (%d edge definitions)", g.Name, len(g.EdgeDefinitions))
		if len(flags) > 0 {
			label += " [" + strings.Join(flags, "; ") + "]"
		}
		return label
	case browser.RowEdge:
		e := graphs[row.Graph].EdgeDefinitions[row.Edge]
		return fmt.Sprintf("  %s: [%s] -> [%s]", e.Collection, strings.Join(e.From, ", "), strings.Join(e.To, ", "))
	}
	return ""
}

// renderBrowserFooter shows the main keys of the view, or the active input
func (m Model) renderBrowserFooter(snap browser.Snapshot) string {
	switch m.mode {
	case ModeSearch:
		return styleWarning.Render("Find: " + m.searchInput.View())
	case ModeFilter:
		line := styleWarning.Render("Filter: " + m.filterInput.View())
		if n := len(m.bookmarks); n > 0 {
			line += styleSubtle.Render(fmt.Sprintf("  %s saved (%d)",
				m.bindingHint(keybinds.ContextTextInput, keybinds.ActionBookmarkPrev), n))
		}
		return line
	}

	ctx := browserContext(snap.View)
	hint := func(a keybinds.Action, label string) string {
		return m.bindingHint(ctx, a) + " " + label
	}

	var parts []string
	switch snap.View.Kind() {
	case browser.KindDatabaseList:
		parts = []string{hint(keybinds.ActionActivate, "open"), hint(keybinds.ActionOpenSearch, "find"), hint(keybinds.ActionRefresh, "refresh"), hint(keybinds.ActionBack, "menu")}
	case browser.KindCollectionList:
		parts = []string{hint(keybinds.ActionActivate, "properties"), hint(keybinds.ActionSampleDocuments, "documents"), hint(keybinds.ActionOpenGraphs, "graphs"), hint(keybinds.ActionOpenSearch, "find"), hint(keybinds.ActionBack, "back")}
	case browser.KindGraphList:
		parts = []string{hint(keybinds.ActionActivate, "open"), hint(keybinds.ActionJumpToVertex, "vertex"), hint(keybinds.ActionOpenSearch, "find"), hint(keybinds.ActionBack, "back")}
	default:
		parts = []string{hint(keybinds.ActionFilterContent, "filter"), hint(keybinds.ActionCopyToClipboard, "copy"), hint(keybinds.ActionRefresh, "refresh"), hint(keybinds.ActionBack, "close")}
		if m.filterExpr != "" {
			parts = append([]string{styleWarning.Render("Filter: " + m.filterExpr), hint(keybinds.ActionBookmarkFilter, "bookmark")}, parts...)
		}
		parts = append(parts, fmt.Sprintf("%3.f%%", m.detailView.ScrollPercent()*100))
	}

	if snap.StackDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d to return", snap.StackDepth))
	}

	return styleSubtle.Render(strings.Join(parts, " | "))
}
