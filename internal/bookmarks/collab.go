package bookmarks

import "github.com/parley-im/parley/internal/domain"

// Collaborator interfaces. The bookmark engine decides what to do; the
// host client supplies how. All of these are consumed, never implemented
// here (internal/jid ships a structural JIDParser for development use).

// JIDParser decomposes a room address into its parts.
type JIDParser interface {
	Split(address string) (localpart, domainpart string)
}

// ConfServers records domains known to host conference rooms, enabling
// later disambiguation of bare room names.
type ConfServers interface {
	Add(domain string)
}

// MUCService is the room-membership subsystem.
type MUCService interface {
	// Active reports whether the client currently occupies the room.
	Active(room string) bool
	// RosterComplete reports whether the occupant roster of an active
	// room has been fully received.
	RosterComplete(room string) bool
	// Join starts tracking the room as joined.
	Join(room, nick, password string)
	// RequestAffiliations asks the room for one affiliation list
	// (member, admin or owner).
	RequestAffiliations(room, affiliation string)
}

// Presence announces the client inside a room.
type Presence interface {
	JoinRoom(room, nick, password string)
}

// UI receives focus requests for rooms that are already joined.
type UI interface {
	FocusRoom(room string)
}

// Accounts provides account-level defaults.
type Accounts interface {
	DefaultNick() string
}

// Events receives session-level notifications.
type Events interface {
	// BookmarkAutojoin is raised once per fetched record flagged autojoin.
	BookmarkAutojoin(b *domain.Bookmark)
}

// Collaborators bundles every external dependency of the engine.
type Collaborators struct {
	JIDs        JIDParser
	ConfServers ConfServers
	MUC         MUCService
	Presence    Presence
	UI          UI
	Accounts    Accounts
	Events      Events
}
