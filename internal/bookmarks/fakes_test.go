package bookmarks

import (
	"context"
	"encoding/xml"
	"testing"

	"github.com/parley-im/parley/internal/domain"
	"github.com/parley-im/parley/internal/jid"
	"github.com/parley-im/parley/internal/logger"
	"github.com/parley-im/parley/internal/stanza"
)

// fakeRouter records outbound stanzas and lets tests deliver result
// stanzas to the registered one-shot handlers.
type fakeRouter struct {
	sent     [][]byte
	handlers map[string]func([]byte)
	sendErr  error
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{handlers: make(map[string]func([]byte))}
}

func (r *fakeRouter) SendIQ(raw []byte) error {
	r.sent = append(r.sent, raw)
	return r.sendErr
}

func (r *fakeRouter) HandleResult(id string, fn func([]byte)) {
	r.handlers[id] = fn
}

// deliver routes raw to the handler registered for id, consuming it.
// Returns false if no handler was registered.
func (r *fakeRouter) deliver(id string, raw []byte) bool {
	fn, ok := r.handlers[id]
	if !ok {
		return false
	}
	delete(r.handlers, id)
	fn(raw)
	return true
}

// lastSent decodes the most recent outbound stanza.
func (r *fakeRouter) lastSent(t *testing.T) *stanza.IQ {
	t.Helper()
	if len(r.sent) == 0 {
		t.Fatal("no stanza was sent")
	}
	var iq stanza.IQ
	if err := xml.Unmarshal(r.sent[len(r.sent)-1], &iq); err != nil {
		t.Fatalf("failed to decode sent stanza: %v", err)
	}
	return &iq
}

type joinCall struct {
	room, nick, password string
}

type affiliationCall struct {
	room, affiliation string
}

// fakeCollab implements every collaborator interface and records calls.
type fakeCollab struct {
	confServers    []string
	autojoins      []string
	mucJoins       []joinCall
	presenceJoins  []joinCall
	affiliations   []affiliationCall
	focused        []string
	active         map[string]bool
	rosterComplete map[string]bool
	defaultNick    string
}

func newFakeCollab() *fakeCollab {
	return &fakeCollab{
		active:         make(map[string]bool),
		rosterComplete: make(map[string]bool),
		defaultNick:    "defaultnick",
	}
}

func (c *fakeCollab) Add(domain string)               { c.confServers = append(c.confServers, domain) }
func (c *fakeCollab) Active(room string) bool         { return c.active[room] }
func (c *fakeCollab) RosterComplete(room string) bool { return c.rosterComplete[room] }
func (c *fakeCollab) DefaultNick() string             { return c.defaultNick }
func (c *fakeCollab) FocusRoom(room string)           { c.focused = append(c.focused, room) }

func (c *fakeCollab) Join(room, nick, password string) {
	c.mucJoins = append(c.mucJoins, joinCall{room, nick, password})
}

func (c *fakeCollab) JoinRoom(room, nick, password string) {
	c.presenceJoins = append(c.presenceJoins, joinCall{room, nick, password})
}

func (c *fakeCollab) RequestAffiliations(room, affiliation string) {
	c.affiliations = append(c.affiliations, affiliationCall{room, affiliation})
}

func (c *fakeCollab) BookmarkAutojoin(b *domain.Bookmark) {
	c.autojoins = append(c.autojoins, b.RoomAddress)
}

func (c *fakeCollab) collaborators() Collaborators {
	return Collaborators{
		JIDs:        jid.Splitter{},
		ConfServers: c,
		MUC:         c,
		Presence:    c,
		UI:          c,
		Accounts:    c,
		Events:      c,
	}
}

// fakeSnapshots is an in-memory Snapshotter.
type fakeSnapshots struct {
	saved [][]*domain.Bookmark
	load  []*domain.Bookmark
}

func (s *fakeSnapshots) SaveSnapshot(_ context.Context, bookmarks []*domain.Bookmark) error {
	s.saved = append(s.saved, bookmarks)
	return nil
}

func (s *fakeSnapshots) LoadSnapshot(_ context.Context) ([]*domain.Bookmark, error) {
	return s.load, nil
}

func newTestManager(t *testing.T) (*Manager, *fakeRouter, *fakeCollab) {
	t.Helper()
	router := newFakeRouter()
	collab := newFakeCollab()
	manager := NewManager(router, collab.collaborators(), nil, logger.Nop())
	return manager, router, collab
}

// fetchResult builds a raw result stanza carrying the given conferences.
func fetchResult(t *testing.T, confs ...stanza.Conference) []byte {
	t.Helper()
	raw, err := xml.Marshal(&stanza.IQ{
		ID:   stanza.FetchRequestID,
		Type: stanza.TypeResult,
		Query: &stanza.Query{
			Storage: &stanza.Storage{Conferences: confs},
		},
	})
	if err != nil {
		t.Fatalf("failed to build fetch result: %v", err)
	}
	return raw
}
