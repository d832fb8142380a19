package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/types"
)

func TestNew_RequiresController(t *testing.T) {
	_, err := New(context.Background(), Config{})
	AssertError(t, err)
}

func TestNew_StartsOnMainMenu(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)

	AssertModelField(t, "mode", m.mode, ModeMainMenu)
	AssertModelField(t, "menuIndex", m.menuIndex, 0)

	view := m.View()
	if !strings.Contains(view, "ArangoDB 3.12.4 (enterprise)") {
		t.Errorf("main menu should show the server version, got:\n%s", view)
	}
	if !strings.Contains(view, "GAE not configured") {
		t.Error("main menu should show the GAE status")
	}
}

func TestMainMenu_Navigation(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)

	press(t, m, "k")
	AssertModelField(t, "menuIndex after wrap", m.menuIndex, len(menuOrder)-1)

	press(t, m, "j", "j")
	AssertModelField(t, "menuIndex", m.menuIndex, 1)
}

func TestMainMenu_Quit(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)

	msg := press(t, m, "q")
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestForceQuitFromBrowser(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter")

	msg := press(t, m, "ctrl+c")
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestMainMenu_BrowseLoadsDatabases(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)

	press(t, m, "enter")

	AssertModelField(t, "mode", m.mode, ModeBrowser)
	AssertModelField(t, "busy", m.busy, false)
	AssertModelField(t, "statusMsg", m.statusMsg, "Loaded 2 databases")

	view := m.View()
	for _, want := range []string{"Database Browser", "_system", "shop"} {
		if !strings.Contains(view, want) {
			t.Errorf("database list should contain %q", want)
		}
	}
}

func TestMainMenu_BrowseFailureIsShown(t *testing.T) {
	gw := newStubGateway()
	gw.failOn("databases", errStub)
	m := CreateTestModel(t, gw, nil)

	press(t, m, "enter")

	AssertModelField(t, "mode", m.mode, ModeBrowser)
	AssertModelField(t, "accessible", m.ctrl.Snapshot().Accessible, false)
	if !strings.Contains(m.errorMsg, "boom") {
		t.Errorf("errorMsg = %q, want the load failure", m.errorMsg)
	}
	if !strings.Contains(m.View(), "Database list not accessible") {
		t.Error("view should explain the inaccessible database list")
	}
}

func TestBrowser_DrillDownAndBack(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter")

	snap := m.ctrl.Snapshot()
	AssertModelField(t, "view", snap.View, browser.View(browser.CollectionList{DB: "shop"}))
	if !strings.Contains(m.View(), "3 collections, 6 documents") {
		t.Error("collection list title should summarise counts")
	}

	press(t, m, "enter")
	snap = m.ctrl.Snapshot()
	AssertModelField(t, "view", snap.View, browser.View(browser.CollectionProperties{DB: "shop", Collection: "knows"}))
	if !strings.Contains(m.detailContent, `"name": "knows"`) {
		t.Errorf("detail content should hold the collection JSON, got %s", m.detailContent)
	}

	press(t, m, "esc")
	AssertModelField(t, "view", m.ctrl.Snapshot().View, browser.View(browser.CollectionList{DB: "shop"}))
	AssertModelField(t, "detailContent", m.detailContent, "")

	press(t, m, "esc")
	AssertModelField(t, "view", m.ctrl.Snapshot().View, browser.View(browser.DatabaseList{}))

	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeMainMenu)
}

func TestBrowser_FetchFailureKeepsView(t *testing.T) {
	gw := newStubGateway()
	m := CreateTestModel(t, gw, nil)
	press(t, m, "enter", "j", "enter")

	gw.failOn("detail", errStub)
	press(t, m, "enter")

	AssertModelField(t, "view", m.ctrl.Snapshot().View, browser.View(browser.CollectionList{DB: "shop"}))
	AssertModelField(t, "errorMsg", m.errorMsg, "Fetch failed: boom")
	AssertModelField(t, "busy", m.busy, false)
}

func TestBrowser_BusyIgnoresKeys(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter")

	m.busy = true
	press(t, m, "j")
	AssertModelField(t, "database index", m.ctrl.Snapshot().DatabaseIndex, 0)
}

func TestBrowser_SampleDocuments(t *testing.T) {
	gw := newStubGateway()
	m := CreateTestModel(t, gw, nil)
	press(t, m, "enter", "j", "enter", "j", "d")

	snap := m.ctrl.Snapshot()
	AssertModelField(t, "modal active", snap.ModalActive, true)
	AssertModelField(t, "modal collection", snap.ModalCollection, "persons")
	if !strings.Contains(m.View(), "Sample documents") {
		t.Error("sample modal should be rendered")
	}

	press(t, m, "2", "x", "5", "backspace", "enter")

	snap = m.ctrl.Snapshot()
	AssertModelField(t, "view", snap.View, browser.View(browser.DocumentViewer{DB: "shop", Collection: "persons"}))
	if len(gw.samples) != 1 || gw.samples[0] != 2 {
		t.Errorf("samples = %v, want [2]", gw.samples)
	}
	if !strings.Contains(m.detailContent, "alice") {
		t.Errorf("document viewer should show the sample, got %s", m.detailContent)
	}
}

func TestViewer_ScrollStaysInsideContent(t *testing.T) {
	gw := newStubGateway()
	gw.documents = 25
	m := CreateTestModel(t, gw, nil)
	press(t, m, "enter", "j", "enter", "j", "d", "2", "5", "enter")

	snap := m.ctrl.Snapshot()
	AssertModelField(t, "view", snap.View, browser.View(browser.DocumentViewer{DB: "shop", Collection: "persons"}))
	if m.detailView.TotalLineCount() <= m.detailView.Height {
		t.Fatalf("content (%d lines) must be taller than the viewport (%d)", m.detailView.TotalLineCount(), m.detailView.Height)
	}

	for i := 0; i < 20 && !m.detailView.AtBottom(); i++ {
		press(t, m, "pgdown")
	}
	if !m.detailView.AtBottom() {
		t.Fatal("pgdown should reach the bottom")
	}
	bottom := m.detailView.YOffset
	AssertModelField(t, "controller scroll at bottom", m.ctrl.Snapshot().Scroll, bottom)

	press(t, m, "up")
	AssertModelField(t, "viewport offset after up", m.detailView.YOffset, bottom-1)
	AssertModelField(t, "controller scroll after up", m.ctrl.Snapshot().Scroll, bottom-1)

	// A taller window shrinks the bound below the current offset
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 200})
	AssertModelField(t, "viewport offset after resize", m.detailView.YOffset, 0)
	AssertModelField(t, "controller scroll after resize", m.ctrl.Snapshot().Scroll, 0)
}

func TestBrowser_Search(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter")

	press(t, m, "/")
	AssertModelField(t, "mode", m.mode, ModeSearch)

	press(t, m, "p", "e", "r")
	AssertModelField(t, "selection while typing", m.ctrl.Snapshot().CollectionIndex, 1)

	press(t, m, "enter")
	AssertModelField(t, "mode", m.mode, ModeBrowser)
	AssertModelField(t, "selection", m.ctrl.Snapshot().CollectionIndex, 1)
}

func TestBrowser_SearchCancelRestoresSelection(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter")

	press(t, m, "/", "_", "g", "esc")
	AssertModelField(t, "mode", m.mode, ModeBrowser)
	AssertModelField(t, "selection", m.ctrl.Snapshot().CollectionIndex, 0)
}

func TestBrowser_GoToBottom(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "G")

	AssertModelField(t, "selection", m.ctrl.Snapshot().CollectionIndex, 2)
}

func TestBrowser_GraphJump(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "g")

	AssertModelField(t, "view", m.ctrl.Snapshot().View, browser.View(browser.GraphList{DB: "shop"}))
	view := m.View()
	if !strings.Contains(view, "social (1 edge definitions)") || !strings.Contains(view, "knows: [persons] -> [persons]") {
		t.Errorf("graph list rendering unexpected:\n%s", view)
	}

	press(t, m, "j", "v")
	snap := m.ctrl.Snapshot()
	AssertModelField(t, "view", snap.View, browser.View(browser.CollectionList{DB: "shop"}))
	AssertModelField(t, "selection", snap.CollectionIndex, 1)
	AssertModelField(t, "stack depth", snap.StackDepth, 1)

	press(t, m, "esc")
	AssertModelField(t, "view", m.ctrl.Snapshot().View, browser.View(browser.GraphList{DB: "shop"}))
}

func TestViewer_FilterAndClear(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "enter")

	press(t, m, "J")
	AssertModelField(t, "mode", m.mode, ModeFilter)

	press(t, m, "n", "a", "m", "e", "enter")
	AssertModelField(t, "mode", m.mode, ModeBrowser)
	AssertModelField(t, "filterExpr", m.filterExpr, "name")
	AssertModelField(t, "detailContent", m.detailContent, `"knows"`)

	press(t, m, "x")
	AssertModelField(t, "filterExpr", m.filterExpr, "")
	if !strings.Contains(m.detailContent, `"count": 3`) {
		t.Errorf("clearing the filter should restore the content, got %s", m.detailContent)
	}
}

func TestViewer_InvalidFilter(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "enter")

	press(t, m, "J", "[", "enter")
	AssertModelField(t, "filterExpr", m.filterExpr, "")
	if !strings.HasPrefix(m.errorMsg, "Invalid JMESPath expression") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestViewer_FilterResetOnLeave(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "enter", "J", "n", "a", "m", "e", "enter")

	press(t, m, "esc", "enter")
	AssertModelField(t, "filterExpr", m.filterExpr, "")
}

func TestHelp_OpenAndClose(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "?")

	AssertModelField(t, "mode", m.mode, ModeHelp)
	AssertModelField(t, "helpContext", string(m.helpContext), "database_list")
	if !strings.Contains(m.helpContent(m.helpContext), "Open selection") {
		t.Error("help should list the database list bindings")
	}

	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeBrowser)
}

func TestNotice_GAEAndOptions(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)

	press(t, m, "j", "enter")
	AssertModelField(t, "mode", m.mode, ModeNotice)
	if !strings.Contains(m.noticeText, "No GAE endpoint configured") {
		t.Errorf("noticeText = %q", m.noticeText)
	}
	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeMainMenu)

	press(t, m, "j", "enter")
	AssertModelField(t, "noticeTitle", m.noticeTitle, "Options")
}

func TestHistory_Disabled(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "H")

	AssertModelField(t, "mode", m.mode, ModeMainMenu)
	if !strings.Contains(m.errorMsg, "History is disabled") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestHistory_LoadAndClear(t *testing.T) {
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	for _, op := range []string{"list_databases", "list_collections"} {
		AssertNoError(t, mgr.Record(types.HistoryEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Operation: op,
			Endpoint:  testEndpoint,
		}))
	}

	m := CreateTestModel(t, newStubGateway(), mgr)
	press(t, m, "H")

	AssertModelField(t, "mode", m.mode, ModeHistory)
	AssertModelField(t, "entries", len(m.historyState.GetEntries()), 2)
	AssertModelField(t, "stats", len(m.historyState.GetStats()), 2)

	press(t, m, "j")
	AssertModelField(t, "index", m.historyState.GetIndex(), 1)

	press(t, m, "C")
	AssertModelField(t, "mode", m.mode, ModeHistoryClearConfirm)
	press(t, m, "y")
	AssertModelField(t, "mode", m.mode, ModeHistory)
	AssertModelField(t, "entries after clear", len(m.historyState.GetEntries()), 0)

	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeMainMenu)
}

func TestMessageTimeout(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	m.messageTimeout = time.Millisecond

	if cmd := m.setStatusMessage("hello"); cmd == nil {
		t.Fatal("expected a clear command")
	}
	m.Update(clearStatusMsg{})
	AssertModelField(t, "statusMsg", m.statusMsg, "")
}

func TestViewer_FilterBookmarks(t *testing.T) {
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	m := CreateTestModel(t, newStubGateway(), mgr)
	press(t, m, "enter", "j", "enter", "enter")

	press(t, m, "b")
	AssertModelField(t, "errorMsg", m.errorMsg, "No active filter to bookmark")

	press(t, m, "J", "n", "a", "m", "e", "enter", "b")
	AssertModelField(t, "statusMsg", m.statusMsg, "Bookmarked filter: name")

	press(t, m, "b")
	AssertModelField(t, "statusMsg", m.statusMsg, "Filter already bookmarked: name")

	press(t, m, "x", "J")
	AssertModelField(t, "mode", m.mode, ModeFilter)
	AssertModelField(t, "bookmarks", len(m.bookmarks), 1)

	press(t, m, "up")
	AssertModelField(t, "filterInput", m.filterInput.Value(), "name")
	press(t, m, "up")
	AssertModelField(t, "filterInput", m.filterInput.Value(), "name")
	press(t, m, "down")
	AssertModelField(t, "filterInput", m.filterInput.Value(), "")

	press(t, m, "up", "enter")
	AssertModelField(t, "filterExpr", m.filterExpr, "name")
	AssertModelField(t, "mode", m.mode, ModeBrowser)
}

func TestViewer_BookmarkWithoutHistory(t *testing.T) {
	m := CreateTestModel(t, newStubGateway(), nil)
	press(t, m, "enter", "j", "enter", "enter", "J", "n", "a", "m", "e", "enter", "b")

	if !strings.Contains(m.errorMsg, "history.enabled") {
		t.Errorf("Expected history hint, got %q", m.errorMsg)
	}
}
