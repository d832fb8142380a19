package tui

import (
	"testing"

	"github.com/arangotui/arangotui/internal/types"
)

func TestHistoryState_MoveClamps(t *testing.T) {
	s := NewHistoryState()

	s.Move(1)
	AssertModelField(t, "empty index", s.GetIndex(), 0)
	if _, ok := s.GetCurrentEntry(); ok {
		t.Error("Expected no current entry when empty")
	}

	s.SetEntries([]types.HistoryEntry{{Operation: "a"}, {Operation: "b"}, {Operation: "c"}})
	s.Move(5)
	AssertModelField(t, "index", s.GetIndex(), 2)
	s.Move(-10)
	AssertModelField(t, "index", s.GetIndex(), 0)

	s.SetIndex(1)
	e, ok := s.GetCurrentEntry()
	if !ok || e.Operation != "b" {
		t.Errorf("Expected entry b, got %+v (%v)", e, ok)
	}

	s.SetIndex(7)
	AssertModelField(t, "out of range ignored", s.GetIndex(), 1)
}

func TestHistoryState_SetEntriesResetsIndex(t *testing.T) {
	s := NewHistoryState()
	s.SetEntries([]types.HistoryEntry{{Operation: "a"}, {Operation: "b"}})
	s.SetIndex(1)

	s.SetEntries(nil)
	AssertModelField(t, "index", s.GetIndex(), 0)
	AssertModelField(t, "entries", len(s.GetEntries()), 0)
}

func TestHistoryState_GetEntriesCopies(t *testing.T) {
	s := NewHistoryState()
	s.SetEntries([]types.HistoryEntry{{Operation: "a"}})

	got := s.GetEntries()
	got[0].Operation = "changed"
	AssertModelField(t, "stored", s.GetEntries()[0].Operation, "a")
}
