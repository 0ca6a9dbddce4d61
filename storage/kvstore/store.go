package kvstore

import "context"

// Collection keys, byte-compatible with the source system's exports.
const (
	KeyUsers   = "school_users"
	KeyNotices = "school_notices"
	KeyBanners = "school_banners"
	KeyLinks   = "school_links"
)

// Store is the Local Record Store: named collections persisted as whole
// JSON arrays. Every mutation is read-full / rewrite-full; concurrent
// writers are last-write-wins, unguarded.
type Store interface {
	// ReadCollection returns the raw collection, or nil when the key has
	// never been written.
	ReadCollection(ctx context.Context, key string) ([]byte, error)
	// WriteCollection replaces the collection as a whole.
	WriteCollection(ctx context.Context, key string, data []byte) error
}
