package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/types"
)

const testEndpoint = "http://arango.test:8529"

// stubGateway serves two databases, three collections of "shop" and one graph
type stubGateway struct {
	mu      sync.Mutex
	fail    map[string]error
	samples []int
	// documents is the sample size served; 0 serves a single document
	documents int
}

func newStubGateway() *stubGateway {
	return &stubGateway{fail: make(map[string]error)}
}

func (g *stubGateway) err(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fail[op]
}

func (g *stubGateway) failOn(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[op] = err
}

func (g *stubGateway) DatabaseSummaries(ctx context.Context) ([]types.DatabaseSummary, error) {
	if err := g.err("databases"); err != nil {
		return nil, err
	}
	return []types.DatabaseSummary{
		{Name: "_system", SystemCollections: 9, Accessible: true},
		{Name: "shop", DocCollections: 1, EdgeCollections: 1, SystemCollections: 1, Accessible: true},
	}, nil
}

func (g *stubGateway) CollectionsWithCounts(ctx context.Context, database string) ([]types.CollectionEntry, error) {
	if err := g.err("collections"); err != nil {
		return nil, err
	}
	count := uint64(3)
	return []types.CollectionEntry{
		{Info: types.CollectionInfo{ID: "12", Name: "persons", Type: types.CollectionTypeDocument}, Count: &count},
		{Info: types.CollectionInfo{ID: "7", Name: "_graphs", Type: types.CollectionTypeDocument, IsSystem: true}},
		{Info: types.CollectionInfo{ID: "13", Name: "knows", Type: types.CollectionTypeEdge}, Count: &count},
	}, nil
}

func (g *stubGateway) CollectionDetail(ctx context.Context, database, collection string) (*types.CollectionDetail, error) {
	if err := g.err("detail"); err != nil {
		return nil, err
	}
	return &types.CollectionDetail{Name: collection, Type: types.CollectionTypeDocument, Count: 3}, nil
}

func (g *stubGateway) Graphs(ctx context.Context, database string) ([]types.GraphSummary, error) {
	if err := g.err("graphs"); err != nil {
		return nil, err
	}
	return []types.GraphSummary{{
		Name:            "social",
		EdgeDefinitions: []types.EdgeDefinition{{Collection: "knows", From: []string{"persons"}, To: []string{"persons"}}},
	}}, nil
}

func (g *stubGateway) SampleDocuments(ctx context.Context, database, collection string, limit int) (*types.DocumentSample, error) {
	if err := g.err("sample"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.samples = append(g.samples, limit)
	n := g.documents
	g.mu.Unlock()

	docs := []json.RawMessage{json.RawMessage(`{"_key":"alice"}`)}
	for i := 1; i < n; i++ {
		docs = append(docs, json.RawMessage(fmt.Sprintf(`{"_key":"doc%d"}`, i)))
	}
	return &types.DocumentSample{
		Collection: collection,
		Limit:      limit,
		Documents:  docs,
	}, nil
}

var errStub = errors.New("boom")

// CreateTestModel creates a sized Model on the main menu
func CreateTestModel(t *testing.T, gw browser.Gateway, mgr *history.Manager) *Model {
	t.Helper()

	m, err := New(context.Background(), Config{
		Controller: browser.New(gw, browser.Options{}),
		History:    mgr,
		Server:     types.ServerVersion{Server: "arango", License: "enterprise", Version: "3.12.4"},
		Endpoint:   testEndpoint,
		Version:    "test-version",
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m
}

// keyMsg builds the key message bubbletea would deliver for s
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one by one, running the commands they return until the
// model settles. It returns the last message the model did not consume.
func press(t *testing.T, m *Model, keys ...string) tea.Msg {
	t.Helper()

	var last tea.Msg
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		last = settle(m, cmd)
	}
	return last
}

// settle runs cmd and feeds model messages back into Update
func settle(m *Model, cmd tea.Cmd) tea.Msg {
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case databasesLoadedMsg, browserResultMsg, historyLoadedMsg, historyClearedMsg:
			_, cmd = m.Update(msg)
		default:
			return msg
		}
	}
	return nil
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
