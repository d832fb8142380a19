package browser

// StackEntry is a suspended view and the selection it had
type StackEntry struct {
	View  View
	Index int
}

// NavigationStack is the explicit back-navigation history for
// graph-to-collection jumps
type NavigationStack struct {
	entries []StackEntry
}

// Push suspends a view
func (s *NavigationStack) Push(view View, index int) {
	s.entries = append(s.entries, StackEntry{View: view, Index: index})
}

// Peek returns the most recent entry without removing it
func (s *NavigationStack) Peek() (StackEntry, bool) {
	if len(s.entries) == 0 {
		return StackEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Pop removes and returns the most recent entry
func (s *NavigationStack) Pop() (StackEntry, bool) {
	e, ok := s.Peek()
	if !ok {
		return e, false
	}
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// Len returns the number of suspended views
func (s *NavigationStack) Len() int {
	return len(s.entries)
}

// Clear drops every entry
func (s *NavigationStack) Clear() {
	s.entries = nil
}

// Entries returns a copy, oldest first
func (s *NavigationStack) Entries() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
