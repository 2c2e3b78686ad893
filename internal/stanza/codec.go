package stanza

import (
	"encoding/xml"
	"fmt"

	"github.com/parley-im/parley/internal/domain"
)

// SplitFunc decomposes a room address into local-part and domain-part.
// Supplied by the identifier-parser collaborator.
type SplitFunc func(address string) (localpart, domainpart string)

// EntryResult is the outcome of decoding a single conference entry.
// A malformed entry is reported as skipped instead of failing the decode,
// so one bad entry cannot discard its siblings.
type EntryResult struct {
	Bookmark   *domain.Bookmark
	SkipReason string
}

// Skipped reports whether the entry was dropped.
func (r EntryResult) Skipped() bool {
	return r.Bookmark == nil
}

// DecodeFetchResult parses a raw inbound stanza as a bookmark fetch
// response. ok is false when the payload is not a result stanza carrying a
// private-storage bookmark document; such payloads are ignored without
// error since unrelated traffic can arrive on the same channel.
func DecodeFetchResult(raw []byte) (entries []EntryResult, ok bool) {
	var iq IQ
	if err := xml.Unmarshal(raw, &iq); err != nil {
		return nil, false
	}
	if iq.Type != TypeResult {
		return nil, false
	}
	if iq.Query == nil || iq.Query.Storage == nil {
		return nil, false
	}

	entries = make([]EntryResult, 0, len(iq.Query.Storage.Conferences))
	for _, conf := range iq.Query.Storage.Conferences {
		entries = append(entries, decodeConference(conf))
	}
	return entries, true
}

func decodeConference(conf Conference) EntryResult {
	if conf.JID == "" {
		return EntryResult{SkipReason: "conference entry without jid attribute"}
	}

	b := &domain.Bookmark{
		RoomAddress: conf.JID,
		Nick:        conf.Nick,
		Password:    conf.Password,
		Name:        conf.Name,
		Autojoin:    conf.Autojoin == "1" || conf.Autojoin == "true",
	}

	// Anything other than a literal true/false leaves the flag unset, so
	// an unknown value is not turned into an explicit false on re-encode.
	if conf.Minimize != nil {
		switch conf.Minimize.Value {
		case "true":
			b.Minimize = domain.TristateTrue
		case "false":
			b.Minimize = domain.TristateFalse
		}
	}

	return EntryResult{Bookmark: b}
}

// EncodeFetchRequest serializes the bookmark fetch request.
func EncodeFetchRequest() ([]byte, error) {
	raw, err := xml.Marshal(NewFetchRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to encode fetch request: %w", err)
	}
	return raw, nil
}

// EncodeFullReplace serializes every bookmark into one set stanza. The
// protocol is full-replace: the resulting document overwrites the entire
// remote collection.
func EncodeFullReplace(id string, bookmarks []*domain.Bookmark, split SplitFunc) ([]byte, error) {
	storage := &Storage{Conferences: make([]Conference, 0, len(bookmarks))}

	for _, b := range bookmarks {
		conf := Conference{
			JID:      b.RoomAddress,
			Name:     b.Name,
			Nick:     b.Nick,
			Password: b.Password,
		}

		if conf.Name == "" {
			// Fall back to the local-part of the address. An address
			// without a local-part ships without a name attribute.
			if localpart, _ := split(b.RoomAddress); localpart != "" {
				conf.Name = localpart
			}
		}

		if b.Autojoin {
			conf.Autojoin = "true"
		} else {
			conf.Autojoin = "false"
		}

		switch b.Minimize {
		case domain.TristateTrue:
			conf.Minimize = &Minimize{Value: "true"}
		case domain.TristateFalse:
			conf.Minimize = &Minimize{Value: "false"}
		}

		storage.Conferences = append(storage.Conferences, conf)
	}

	iq := &IQ{
		ID:    id,
		Type:  TypeSet,
		Query: &Query{Storage: storage},
	}

	raw, err := xml.Marshal(iq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bookmark storage: %w", err)
	}
	return raw, nil
}
