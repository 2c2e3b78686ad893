package bookmarks

import "testing"

func newTestIndex(addresses ...string) *MatchIndex {
	idx := NewMatchIndex()
	for _, address := range addresses {
		idx.Add(address)
	}
	return idx
}

func TestMatchIndexCompleteCyclesForward(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example", "zoo@conf.example")

	want := []string{"room1@conf.example", "room2@conf.example", "room1@conf.example"}
	for i, expected := range want {
		got, ok := idx.Complete("room", true)
		if !ok {
			t.Fatalf("Complete() call %d returned no match", i)
		}
		if got != expected {
			t.Errorf("Complete() call %d = %q, want %q", i, got, expected)
		}
	}
}

func TestMatchIndexCompleteCyclesBackward(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example")

	got, _ := idx.Complete("room", false)
	if got != "room2@conf.example" {
		t.Errorf("first backward Complete() = %q, want room2", got)
	}
	got, _ = idx.Complete("room", false)
	if got != "room1@conf.example" {
		t.Errorf("second backward Complete() = %q, want room1", got)
	}
	got, _ = idx.Complete("room", false)
	if got != "room2@conf.example" {
		t.Errorf("backward Complete() should wrap, got %q", got)
	}
}

func TestMatchIndexEmptyPrefixMatchesAll(t *testing.T) {
	idx := newTestIndex("b@conf.example", "a@conf.example")

	got, ok := idx.Complete("", true)
	if !ok || got != "a@conf.example" {
		t.Errorf("Complete(\"\") = %q, %v; want a@conf.example, true", got, ok)
	}
	got, _ = idx.Complete("", true)
	if got != "b@conf.example" {
		t.Errorf("second Complete(\"\") = %q, want b@conf.example", got)
	}
}

func TestMatchIndexNoMatch(t *testing.T) {
	idx := newTestIndex("room@conf.example")

	if _, ok := idx.Complete("xyz", true); ok {
		t.Error("Complete() with no matching prefix should return ok=false")
	}
}

func TestMatchIndexResetRestartsCycle(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example")

	idx.Complete("room", true) // room1
	idx.Reset()

	got, _ := idx.Complete("room", true)
	if got != "room1@conf.example" {
		t.Errorf("Complete() after Reset = %q, want room1", got)
	}
}

func TestMatchIndexPrefixChangeRestartsCycle(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example", "other@conf.example")

	idx.Complete("room", true) // room1
	got, _ := idx.Complete("o", true)
	if got != "other@conf.example" {
		t.Errorf("Complete() with new prefix = %q, want other", got)
	}
}

func TestMatchIndexRemove(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example")

	idx.Remove("room1@conf.example")
	got, ok := idx.Complete("room", true)
	if !ok || got != "room2@conf.example" {
		t.Errorf("Complete() after remove = %q, %v; want room2, true", got, ok)
	}

	idx.Remove("room2@conf.example")
	if _, ok := idx.Complete("room", true); ok {
		t.Error("Complete() should find nothing once all entries are removed")
	}
}

func TestMatchIndexAddDuplicate(t *testing.T) {
	idx := newTestIndex("room@conf.example", "room@conf.example")

	if got := len(idx.Addresses()); got != 1 {
		t.Errorf("duplicate Add() produced %d entries, want 1", got)
	}
}

func TestMatchIndexClear(t *testing.T) {
	idx := newTestIndex("room@conf.example")

	idx.Clear()
	if got := len(idx.Addresses()); got != 0 {
		t.Errorf("Clear() left %d entries, want 0", got)
	}
}

func TestMatchIndexCursorSurvivesUnrelatedRemove(t *testing.T) {
	idx := newTestIndex("room1@conf.example", "room2@conf.example", "room3@conf.example")

	idx.Complete("room", true) // room1
	idx.Remove("room3@conf.example")

	got, _ := idx.Complete("room", true)
	if got != "room2@conf.example" {
		t.Errorf("Complete() after unrelated remove = %q, want room2", got)
	}
}
