package bookmarks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/parley-im/parley/internal/domain"
	"github.com/parley-im/parley/internal/logger"
	"github.com/parley-im/parley/internal/stanza"
)

// IQRouter is the transport boundary. It delivers outbound stanzas and
// routes inbound result stanzas back by correlation id. Registering a
// handler under an id already taken replaces the previous handler; a
// handler fires at most once.
type IQRouter interface {
	SendIQ(raw []byte) error
	HandleResult(id string, fn func(raw []byte))
}

// Snapshotter persists a last-known-good copy of the bookmark set locally,
// so a restart has bookmarks before the remote fetch resolves. Always best
// effort: failures are logged, never propagated.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, bookmarks []*domain.Bookmark) error
	LoadSnapshot(ctx context.Context) ([]*domain.Bookmark, error)
}

// Synchronizer keeps the remote private-storage document and the local
// store reconciled: one bulk fetch at session start, one full-replace push
// after every local mutation.
type Synchronizer struct {
	router    IQRouter
	store     *Store
	index     *MatchIndex
	collab    Collaborators
	snapshots Snapshotter // nil = snapshot cache disabled
	logger    logger.Logger

	applied atomic.Bool // first fetch response applied

	mu             sync.Mutex
	onFetchApplied func()
}

// NewSynchronizer wires a synchronizer over the given store and index.
func NewSynchronizer(router IQRouter, store *Store, index *MatchIndex, collab Collaborators, snapshots Snapshotter, log logger.Logger) *Synchronizer {
	return &Synchronizer{
		router:    router,
		store:     store,
		index:     index,
		collab:    collab,
		snapshots: snapshots,
		logger:    log,
	}
}

// OnFetchApplied registers a callback invoked after a fetch response has
// been decoded into the store. Used for post-fetch work such as seeding.
func (s *Synchronizer) OnFetchApplied(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFetchApplied = fn
}

// FetchApplied reports whether at least one fetch response has been
// applied this session.
func (s *Synchronizer) FetchApplied() bool {
	return s.applied.Load()
}

// RequestFetch resets the store and index and issues the bulk fetch
// request. Issuing a new fetch replaces the correlation handler of any
// fetch still in flight, so a stale response is dropped.
func (s *Synchronizer) RequestFetch() error {
	s.store.FetchBegin()
	s.index.Clear()

	s.router.HandleResult(stanza.FetchRequestID, s.handleFetchResult)

	raw, err := stanza.EncodeFetchRequest()
	if err != nil {
		return err
	}

	s.logger.Debug("requesting bookmark storage",
		logger.String("id", stanza.FetchRequestID))
	return s.router.SendIQ(raw)
}

// PushFull encodes the entire store and sends it as a fire-and-forget set
// request, overwriting the remote document. No response is tracked; a
// dropped push leaves local and remote diverged until the next push or
// fetch.
func (s *Synchronizer) PushFull() {
	all := s.store.List()

	raw, err := stanza.EncodeFullReplace(uuid.NewString(), all, s.collab.JIDs.Split)
	if err != nil {
		s.logger.Error("failed to encode bookmark storage", logger.Error(err))
		return
	}

	if err := s.router.SendIQ(raw); err != nil {
		s.logger.Warn("bookmark push failed, remote copy is stale until next push or fetch",
			logger.Error(err))
	}

	s.saveSnapshot(all)
}

func (s *Synchronizer) handleFetchResult(raw []byte) {
	entries, ok := stanza.DecodeFetchResult(raw)
	if !ok {
		s.logger.Debug("ignoring stanza that is not a bookmark storage result")
		return
	}

	for _, entry := range entries {
		if entry.Skipped() {
			s.logger.Debug("skipping bookmark entry", logger.String("reason", entry.SkipReason))
			continue
		}
		s.apply(entry.Bookmark)
	}

	s.applied.Store(true)
	s.logger.Info("bookmark storage fetched", logger.Int("count", s.store.Count()))

	s.saveSnapshot(s.store.List())

	s.mu.Lock()
	fn := s.onFetchApplied
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// apply installs one decoded record: store, index, conference-server
// registration and the autojoin notification.
func (s *Synchronizer) apply(b *domain.Bookmark) {
	s.logger.Debug("handling bookmark", logger.String("room", b.RoomAddress))

	s.store.Upsert(b)
	s.index.Add(b.RoomAddress)

	// An address without a domain-part still yields a usable bookmark.
	if _, domainpart := s.collab.JIDs.Split(b.RoomAddress); domainpart != "" {
		s.collab.ConfServers.Add(domainpart)
	}

	if b.Autojoin {
		// The notification hands out a copy; the stored record stays
		// private to the store.
		s.collab.Events.BookmarkAutojoin(b.Clone())
	}
}

// RestoreSnapshot pre-populates the store and index from the local
// snapshot cache. Called before the first fetch; the fetch response
// replaces whatever this loads.
func (s *Synchronizer) RestoreSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	all, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	for _, b := range all {
		s.store.Upsert(b)
		s.index.Add(b.RoomAddress)
	}
	if len(all) > 0 {
		s.logger.Info("restored bookmarks from local snapshot", logger.Int("count", len(all)))
	}
	return nil
}

func (s *Synchronizer) saveSnapshot(all []*domain.Bookmark) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSnapshot(context.Background(), all); err != nil {
		s.logger.Warn("failed to save bookmark snapshot", logger.Error(err))
	}
}
