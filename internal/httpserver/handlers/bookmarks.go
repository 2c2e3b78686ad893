package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/parley-im/parley/internal/httpserver/deps"
)

type bookmarkEntry struct {
	RoomAddress string `json:"room_address"`
	Name        string `json:"name,omitempty"`
	Nick        string `json:"nick,omitempty"`
	Autojoin    bool   `json:"autojoin"`
	HasPassword bool   `json:"has_password"`
}

type bookmarksResponse struct {
	Count     int             `json:"count"`
	Bookmarks []bookmarkEntry `json:"bookmarks"`
}

// Bookmarks lists the current bookmark set. Passwords are never exposed,
// only their presence.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Bookmarks.List()

		entries := make([]bookmarkEntry, 0, len(all))
		for _, b := range all {
			entries = append(entries, bookmarkEntry{
				RoomAddress: b.RoomAddress,
				Name:        b.Name,
				Nick:        b.Nick,
				Autojoin:    b.Autojoin,
				HasPassword: b.Password != "",
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bookmarksResponse{
			Count:     len(entries),
			Bookmarks: entries,
		})
	}
}
