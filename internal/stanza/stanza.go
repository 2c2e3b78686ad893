// Package stanza defines the XML shapes of the private-storage bookmark
// protocol and the codec between them and domain bookmarks.
package stanza

import "encoding/xml"

const (
	// NSPrivate is the namespace of the private-storage query container.
	NSPrivate = "jabber:iq:private"
	// NSBookmarks is the namespace of the bookmark storage container.
	NSBookmarks = "storage:bookmarks"
	// NSGajimBookmarks is the namespace of Gajim's bookmark extension.
	// The minimize element is only recognized in this namespace; same-named
	// elements from other extensions are ignored.
	NSGajimBookmarks = "xmpp:gajim.org/bookmarks"
)

const (
	TypeGet    = "get"
	TypeSet    = "set"
	TypeResult = "result"
)

// FetchRequestID is the fixed correlation id of the bookmark fetch request.
// Re-registering a handler under this id replaces the previous one, which
// is what drops responses to a superseded fetch.
const FetchRequestID = "bookmark_init_request"

// IQ is a request/response stanza carrying a private-storage query.
type IQ struct {
	XMLName xml.Name `xml:"iq"`
	ID      string   `xml:"id,attr"`
	Type    string   `xml:"type,attr"`
	Query   *Query   `xml:"jabber:iq:private query"`
}

// Query is the private-storage container.
type Query struct {
	XMLName xml.Name `xml:"jabber:iq:private query"`
	Storage *Storage `xml:"storage:bookmarks storage"`
}

// Storage holds the bookmark entries. Children other than conference
// entries are dropped on decode; the wire format is allowed to grow.
type Storage struct {
	XMLName     xml.Name     `xml:"storage:bookmarks storage"`
	Conferences []Conference `xml:"conference"`
}

// Conference is one bookmark entry on the wire.
type Conference struct {
	XMLName  xml.Name  `xml:"conference"`
	JID      string    `xml:"jid,attr"`
	Name     string    `xml:"name,attr,omitempty"`
	Autojoin string    `xml:"autojoin,attr"`
	Nick     string    `xml:"nick,omitempty"`
	Password string    `xml:"password,omitempty"`
	Minimize *Minimize `xml:"xmpp:gajim.org/bookmarks minimize"`
}

// Minimize is Gajim's minimize extension element.
type Minimize struct {
	XMLName xml.Name `xml:"xmpp:gajim.org/bookmarks minimize"`
	Value   string   `xml:",chardata"`
}

// NewFetchRequest builds the get stanza requesting the stored bookmark
// document, correlated under FetchRequestID.
func NewFetchRequest() *IQ {
	return &IQ{
		ID:    FetchRequestID,
		Type:  TypeGet,
		Query: &Query{Storage: &Storage{}},
	}
}
