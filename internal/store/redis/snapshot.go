// Package redis caches the last-known-good bookmark set locally, so a
// restarted client has bookmarks to show before the remote fetch resolves.
// The cache mirrors the wire protocol's full-replace semantics: every save
// rewrites the whole set.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parley-im/parley/internal/domain"
)

// DefaultSnapshotTTL bounds how long a stale snapshot survives a client
// that never reconnects.
const DefaultSnapshotTTL = 7 * 24 * time.Hour

// Store handles Redis operations for the bookmark snapshot cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis snapshot store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot replaces the cached set with bookmarks. The membership set
// is rewritten in full; orphaned per-bookmark keys age out via TTL.
func (s *Store) SaveSnapshot(ctx context.Context, bookmarks []*domain.Bookmark) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, AllBookmarksKey())
	for _, b := range bookmarks {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmark %s: %w", b.RoomAddress, err)
		}
		pipe.Set(ctx, BookmarkKey(b.RoomAddress), data, DefaultSnapshotTTL)
		pipe.SAdd(ctx, AllBookmarksKey(), b.RoomAddress)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmark snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the cached bookmark set. Entries that cannot be
// read or parsed are skipped.
func (s *Store) LoadSnapshot(ctx context.Context) ([]*domain.Bookmark, error) {
	addresses, err := s.client.SMembers(ctx, AllBookmarksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot members: %w", err)
	}

	if len(addresses) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(addresses))
	for _, address := range addresses {
		b, err := s.getBookmark(ctx, address)
		if err != nil {
			// Skip bookmarks that couldn't be retrieved
			continue
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

func (s *Store) getBookmark(ctx context.Context, address string) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark not found: %s", address)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return &b, nil
}
