package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/types"
)

// HistoryState encapsulates the fetch history modal state
type HistoryState struct {
	mu sync.RWMutex

	entries []types.HistoryEntry
	stats   []history.OperationStats
	index   int

	view viewport.Model
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{
		entries: []types.HistoryEntry{},
		view:    viewport.New(80, 20),
	}
}

// GetEntries returns a copy of the entries slice
func (s *HistoryState) GetEntries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// SetEntries sets the entries slice
func (s *HistoryState) SetEntries(entries []types.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	s.entries = entries
	if s.index >= len(entries) {
		s.index = 0
	}
}

// GetStats returns a copy of the per-operation statistics
func (s *HistoryState) GetStats() []history.OperationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]history.OperationStats, len(s.stats))
	copy(result, s.stats)
	return result
}

// SetStats sets the per-operation statistics
func (s *HistoryState) SetStats(stats []history.OperationStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// GetIndex returns the current index
func (s *HistoryState) GetIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// SetIndex sets the current index, ignoring out-of-range values
func (s *HistoryState) SetIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || (index >= len(s.entries) && index != 0) {
		return
	}
	s.index = index
}

// Move shifts the index by delta, clamped to the entries
func (s *HistoryState) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.index = 0
		return
	}
	s.index = min(max(s.index+delta, 0), len(s.entries)-1)
}

// GetCurrentEntry returns the selected entry
func (s *HistoryState) GetCurrentEntry() (types.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index < 0 || s.index >= len(s.entries) {
		return types.HistoryEntry{}, false
	}
	return s.entries[s.index], true
}

// GetView returns the viewport
func (s *HistoryState) GetView() viewport.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView stores the viewport
func (s *HistoryState) SetView(view viewport.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}
