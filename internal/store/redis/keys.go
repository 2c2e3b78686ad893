package redis

const (
	// KeyPrefixBookmark is the prefix for individual bookmark keys
	KeyPrefixBookmark = "parley:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmarked addresses
	KeyAllBookmarks = "parley:bookmarks:all"
)

// BookmarkKey returns the Redis key for one bookmark.
func BookmarkKey(address string) string {
	return KeyPrefixBookmark + address
}

// AllBookmarksKey returns the Redis key for the set of all bookmarks.
func AllBookmarksKey() string {
	return KeyAllBookmarks
}
