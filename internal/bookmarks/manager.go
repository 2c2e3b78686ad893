// Package bookmarks implements the client's persistent chat-room bookmark
// set: an in-memory store mirrored to the account's private storage on the
// server, a prefix-search index for completion, and the join/list/find
// operation surface the rest of the client talks to.
package bookmarks

import (
	"context"
	"sync"

	"github.com/parley-im/parley/internal/domain"
	"github.com/parley-im/parley/internal/logger"
)

// Fields carries the optional parameters of Add and Update. A nil field is
// "not supplied": Add leaves it at its default, Update keeps the current
// value. The vendor minimize flag is deliberately absent; it is only ever
// set by decoding and is preserved untouched across updates.
type Fields struct {
	Nick     *string
	Password *string
	Name     *string
	Autojoin *bool
}

// Manager owns the bookmark store and the match index and keeps them
// consistent under add/update/remove, triggering one full-replace push per
// mutation. Operations that do not apply (add of a known address, update
// or remove of an unknown one) report false instead of an error; the
// caller decides how to surface that.
type Manager struct {
	mu     sync.Mutex
	store  *Store
	index  *MatchIndex
	sync   *Synchronizer
	collab Collaborators
	logger logger.Logger
}

// NewManager builds the bookmark engine: store, index and synchronizer.
func NewManager(router IQRouter, collab Collaborators, snapshots Snapshotter, log logger.Logger) *Manager {
	store := NewStore()
	index := NewMatchIndex()
	return &Manager{
		store:  store,
		index:  index,
		sync:   NewSynchronizer(router, store, index, collab, snapshots, log),
		collab: collab,
		logger: log,
	}
}

// RequestFetch starts (or restarts) the bulk fetch of the remote document.
func (m *Manager) RequestFetch() error {
	return m.sync.RequestFetch()
}

// RestoreSnapshot warm-starts the store from the local snapshot cache.
func (m *Manager) RestoreSnapshot(ctx context.Context) error {
	return m.sync.RestoreSnapshot(ctx)
}

// OnFetchApplied registers a callback run after a fetch has been applied.
func (m *Manager) OnFetchApplied(fn func()) {
	m.sync.OnFetchApplied(fn)
}

// Ready reports whether the initial fetch has been applied this session.
func (m *Manager) Ready() bool {
	return m.sync.FetchApplied()
}

// Add creates a bookmark for address. Returns false if one already exists.
func (m *Manager) Add(address string, f Fields) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registerConfServer(address)

	if m.store.Contains(address) {
		return false
	}

	b := &domain.Bookmark{
		RoomAddress: address,
		Nick:        stringValue(f.Nick),
		Password:    stringValue(f.Password),
		Name:        stringValue(f.Name),
		Autojoin:    f.Autojoin != nil && *f.Autojoin,
	}

	m.store.Upsert(b)
	m.index.Add(address)
	m.logger.Debug("bookmark added", logger.String("room", address))

	m.sync.PushFull()
	return true
}

// Update replaces only the supplied fields of an existing bookmark,
// leaving the rest (including the vendor minimize flag) untouched.
// The record is rewritten as a whole; concurrent readers keep seeing the
// previous copy until the replacement lands. Returns false if no bookmark
// exists for address.
func (m *Manager) Update(address string, f Fields) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.Get(address)
	if !ok {
		return false
	}

	if f.Nick != nil {
		b.Nick = *f.Nick
	}
	if f.Password != nil {
		b.Password = *f.Password
	}
	if f.Name != nil {
		b.Name = *f.Name
	}
	if f.Autojoin != nil {
		b.Autojoin = *f.Autojoin
	}
	m.store.Upsert(b)
	m.logger.Debug("bookmark updated", logger.String("room", address))

	m.sync.PushFull()
	return true
}

// Remove deletes the bookmark for address. Returns false if none exists.
func (m *Manager) Remove(address string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.store.Remove(address) {
		return false
	}
	m.index.Remove(address)
	m.logger.Debug("bookmark removed", logger.String("room", address))

	m.sync.PushFull()
	return true
}

// Join joins the bookmarked room using its saved details. The nickname is
// the bookmark's own, falling back to the account default. A room already
// occupied with a complete roster gets focused instead of re-joined.
// Returns false only when no bookmark exists for address.
func (m *Manager) Join(address string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.Get(address)
	if !ok {
		return false
	}

	switch {
	case !m.collab.MUC.Active(address):
		nick := b.Nick
		if nick == "" {
			nick = m.collab.Accounts.DefaultNick()
		}
		m.collab.Presence.JoinRoom(address, nick, b.Password)
		m.collab.MUC.Join(address, nick, b.Password)
		for _, affiliation := range []string{"member", "admin", "owner"} {
			m.collab.MUC.RequestAffiliations(address, affiliation)
		}
	case m.collab.MUC.RosterComplete(address):
		m.collab.UI.FocusRoom(address)
	}

	return true
}

// Get retrieves a copy of the bookmark for address.
func (m *Manager) Get(address string) (*domain.Bookmark, bool) {
	return m.store.Get(address)
}

// List returns copies of all bookmarks sorted by room address.
func (m *Manager) List() []*domain.Bookmark {
	return m.store.List()
}

// Exists reports whether a bookmark exists for address.
func (m *Manager) Exists(address string) bool {
	return m.store.Contains(address)
}

// Find cycles through the bookmarked addresses matching prefix.
func (m *Manager) Find(prefix string, forward bool) (string, bool) {
	return m.index.Complete(prefix, forward)
}

// ResetFind clears the completion cursor for a new completion session.
func (m *Manager) ResetFind() {
	m.index.Reset()
}

// Close releases the store and index. Registered with session shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.FetchBegin()
	m.index.Clear()
}

func (m *Manager) registerConfServer(address string) {
	if _, domainpart := m.collab.JIDs.Split(address); domainpart != "" {
		m.collab.ConfServers.Add(domainpart)
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
