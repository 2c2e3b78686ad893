package bookmarks

import (
	"sort"
	"strings"
	"sync"
)

// MatchIndex is a prefix-searchable view of the known room addresses, used
// for interactive completion. Complete cycles through the addresses
// sharing a prefix, keeping a cursor across calls; Reset clears the cursor
// when the UI starts a new completion session.
//
// Addresses are held sorted, so repeated cycles enumerate matches in a
// deterministic lexicographic order.
type MatchIndex struct {
	mu    sync.Mutex
	items []string

	// cursor state, valid while cycling one prefix
	search  string
	last    string
	cycling bool
}

// NewMatchIndex creates an empty index.
func NewMatchIndex() *MatchIndex {
	return &MatchIndex{}
}

// Add inserts address into the index. Duplicates are ignored.
func (idx *MatchIndex) Add(address string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	i := sort.SearchStrings(idx.items, address)
	if i < len(idx.items) && idx.items[i] == address {
		return
	}
	idx.items = append(idx.items, "")
	copy(idx.items[i+1:], idx.items[i:])
	idx.items[i] = address
}

// Remove deletes address from the index.
func (idx *MatchIndex) Remove(address string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	i := sort.SearchStrings(idx.items, address)
	if i >= len(idx.items) || idx.items[i] != address {
		return
	}
	idx.items = append(idx.items[:i], idx.items[i+1:]...)
	if idx.last == address {
		idx.cycling = false
	}
}

// Clear drops all contents and the cursor.
func (idx *MatchIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items = nil
	idx.resetLocked()
}

// Reset clears the cursor state only; contents are kept.
func (idx *MatchIndex) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.resetLocked()
}

func (idx *MatchIndex) resetLocked() {
	idx.search = ""
	idx.last = ""
	idx.cycling = false
}

// Complete returns the next (or previous) address sharing prefix. The
// empty prefix matches every address. Successive calls with the same
// prefix cycle through the matches, wrapping around at either end.
func (idx *MatchIndex) Complete(prefix string, forward bool) (string, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	matches := idx.matchesLocked(prefix)
	if len(matches) == 0 {
		idx.resetLocked()
		return "", false
	}

	var pos int
	switch {
	case !idx.cycling || idx.search != prefix:
		// new completion run
		if forward {
			pos = 0
		} else {
			pos = len(matches) - 1
		}
	default:
		pos = indexOf(matches, idx.last)
		if pos < 0 {
			// cursor entry disappeared, start over
			pos = 0
		} else if forward {
			pos = (pos + 1) % len(matches)
		} else {
			pos = (pos - 1 + len(matches)) % len(matches)
		}
	}

	idx.search = prefix
	idx.last = matches[pos]
	idx.cycling = true
	return matches[pos], true
}

// Addresses returns the indexed addresses in sorted order.
func (idx *MatchIndex) Addresses() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	out := make([]string, len(idx.items))
	copy(out, idx.items)
	return out
}

func (idx *MatchIndex) matchesLocked(prefix string) []string {
	if prefix == "" {
		return idx.items
	}
	// items are sorted, so all matches are contiguous
	start := sort.SearchStrings(idx.items, prefix)
	end := start
	for end < len(idx.items) && strings.HasPrefix(idx.items[end], prefix) {
		end++
	}
	return idx.items[start:end]
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}
