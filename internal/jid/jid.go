package jid

import "strings"

// JID holds the parts of a decomposed XMPP address.
// Parsing here is purely structural: no stringprep, no validation. The
// session layer is expected to plug in a full parser behind the
// bookmarks.JIDParser interface.
type JID struct {
	Local    string
	Domain   string
	Resource string
}

// Parse decomposes an address of the form local@domain/resource.
// Any part may be absent; a bare domain is returned as Domain only.
func Parse(address string) JID {
	var j JID

	rest := address
	if i := strings.Index(rest, "/"); i >= 0 {
		j.Resource = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "@"); i >= 0 {
		j.Local = rest[:i]
		j.Domain = rest[i+1:]
	} else {
		j.Domain = rest
	}
	return j
}

// Splitter implements the bookmarks.JIDParser collaborator interface with
// structural parsing only.
type Splitter struct{}

// Split returns the local-part and domain-part of address.
func (Splitter) Split(address string) (localpart, domainpart string) {
	j := Parse(address)
	return j.Local, j.Domain
}
