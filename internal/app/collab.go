package app

import (
	"github.com/parley-im/parley/internal/bookmarks"
	"github.com/parley-im/parley/internal/domain"
	"github.com/parley-im/parley/internal/jid"
	"github.com/parley-im/parley/internal/logger"
)

// Development stand-ins for the session-layer collaborators. They log
// what a real client would do, which is all the dev daemon needs: the
// bookmark engine itself behaves exactly as in production.

type devConfServers struct {
	known map[string]struct{}
	log   logger.Logger
}

func (c *devConfServers) Add(domain string) {
	if _, ok := c.known[domain]; ok {
		return
	}
	c.known[domain] = struct{}{}
	c.log.Debug("conference server registered", logger.String("domain", domain))
}

type devMUC struct {
	log logger.Logger
}

func (m *devMUC) Active(room string) bool         { return false }
func (m *devMUC) RosterComplete(room string) bool { return false }

func (m *devMUC) Join(room, nick, password string) {
	m.log.Info("muc join", logger.String("room", room), logger.String("nick", nick))
}

func (m *devMUC) RequestAffiliations(room, affiliation string) {
	m.log.Debug("affiliation list requested",
		logger.String("room", room),
		logger.String("affiliation", affiliation))
}

type devPresence struct {
	log logger.Logger
}

func (p *devPresence) JoinRoom(room, nick, password string) {
	p.log.Info("presence join", logger.String("room", room), logger.String("nick", nick))
}

type devUI struct {
	log logger.Logger
}

func (u *devUI) FocusRoom(room string) {
	u.log.Info("room focus requested", logger.String("room", room))
}

type devAccounts struct {
	nick string
}

func (a *devAccounts) DefaultNick() string { return a.nick }

type devEvents struct {
	log logger.Logger
}

func (e *devEvents) BookmarkAutojoin(b *domain.Bookmark) {
	e.log.Info("autojoin requested", logger.String("room", b.RoomAddress))
}

func devCollaborators(log logger.Logger, accountNick string) bookmarks.Collaborators {
	return bookmarks.Collaborators{
		JIDs:        jid.Splitter{},
		ConfServers: &devConfServers{known: make(map[string]struct{}), log: log},
		MUC:         &devMUC{log: log},
		Presence:    &devPresence{log: log},
		UI:          &devUI{log: log},
		Accounts:    &devAccounts{nick: accountNick},
		Events:      &devEvents{log: log},
	}
}
