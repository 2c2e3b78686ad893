package bookmarks

import (
	"testing"

	"github.com/parley-im/parley/internal/domain"
)

func TestNewStore(t *testing.T) {
	store := NewStore()
	if store == nil {
		t.Fatal("NewStore() returned nil")
	}
	if got := store.Count(); got != 0 {
		t.Errorf("NewStore() should start empty, got %d records", got)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	store := NewStore()

	store.Upsert(&domain.Bookmark{RoomAddress: "room@conf.example", Nick: "alice"})
	store.Upsert(&domain.Bookmark{RoomAddress: "room@conf.example", Nick: "bob"})

	if got := store.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	b, ok := store.Get("room@conf.example")
	if !ok {
		t.Fatal("Get() record missing after upsert")
	}
	if b.Nick != "bob" {
		t.Errorf("Nick = %q, want %q (upsert should fully replace)", b.Nick, "bob")
	}
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()
	store.Upsert(&domain.Bookmark{RoomAddress: "room@conf.example"})

	if !store.Remove("room@conf.example") {
		t.Error("Remove() = false for existing record, want true")
	}
	if store.Remove("room@conf.example") {
		t.Error("Remove() = true for missing record, want false")
	}
	if store.Contains("room@conf.example") {
		t.Error("Contains() = true after remove, want false")
	}
}

func TestStoreFetchBeginClears(t *testing.T) {
	store := NewStore()
	store.Upsert(&domain.Bookmark{RoomAddress: "a@conf.example"})
	store.Upsert(&domain.Bookmark{RoomAddress: "b@conf.example"})

	store.FetchBegin()

	if got := store.Count(); got != 0 {
		t.Errorf("Count() = %d after FetchBegin, want 0", got)
	}

	// safe to call again
	store.FetchBegin()
	if got := store.Count(); got != 0 {
		t.Errorf("Count() = %d after second FetchBegin, want 0", got)
	}
}

func TestStoreListSorted(t *testing.T) {
	store := NewStore()
	store.Upsert(&domain.Bookmark{RoomAddress: "zoo@conf.example"})
	store.Upsert(&domain.Bookmark{RoomAddress: "a@conf.example"})
	store.Upsert(&domain.Bookmark{RoomAddress: "m@conf.example"})

	list := store.List()
	want := []string{"a@conf.example", "m@conf.example", "zoo@conf.example"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(list), len(want))
	}
	for i, b := range list {
		if b.RoomAddress != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, b.RoomAddress, want[i])
		}
	}
}
