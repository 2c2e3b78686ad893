package domain

// Tristate is a three-valued flag: unset, true or false.
// The zero value is unset, which is distinct from false: an unset flag is
// never serialized, a false one is serialized as the literal "false".
type Tristate int

const (
	TristateUnset Tristate = iota
	TristateTrue
	TristateFalse
)

func (t Tristate) String() string {
	switch t {
	case TristateTrue:
		return "true"
	case TristateFalse:
		return "false"
	default:
		return "unset"
	}
}

// Bookmark is one remote-persisted record describing how to rejoin a
// specific chat room.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// RoomAddress is the bare JID of the room and the unique key of the
	// record. Changing it means remove + add.
	RoomAddress string `json:"room_address"`

	// ─────────────────────────────
	// Join parameters
	// ─────────────────────────────

	// Nick is the nickname to use when joining.
	// Empty means "use the account default at join time".
	Nick string `json:"nick,omitempty"`

	// Password is the room password, if the room requires one.
	Password string `json:"password,omitempty"`

	// Name is the display name of the bookmark.
	// Empty means "derive from the local-part of RoomAddress when
	// serializing".
	Name string `json:"name,omitempty"`

	// Autojoin marks the room to be joined automatically at session start.
	Autojoin bool `json:"autojoin"`

	// ─────────────────────────────
	// Vendor extension
	// ─────────────────────────────

	// Minimize is Gajim's unstandardized minimize flag. We never interpret
	// it; we carry it verbatim so that a full-replace push does not clobber
	// state written by other clients sharing the account.
	Minimize Tristate `json:"minimize,omitempty"`
}

// Clone returns a copy of the bookmark.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	return &c
}
