// Package store implements the in-memory entity store: the single point of
// truth for users, posts, likes, follows, and the credit ledger.
package store

import (
	"sync"
	"time"

	"prism/internal/models"
	"prism/internal/observability"
)

// likeKey identifies a like edge. Presence in the like set means "liked".
type likeKey struct {
	PostID uint
	UserID uint
}

// followKey identifies a directional follow edge.
type followKey struct {
	FollowerID uint
	FollowedID uint
}

// Store owns all entity records and their counters. A single store-wide
// mutex guards every operation; the multi-field updates in ToggleFollow and
// PurchaseMedia are atomic because they run entirely under it.
type Store struct {
	mu sync.RWMutex

	users map[uint]*models.User
	posts map[uint]*models.Post
	// feed holds post IDs most-recent-first; CreatePost prepends.
	feed []uint

	likes   map[likeKey]struct{}
	follows map[followKey]struct{}

	nextUserID uint
	nextPostID uint

	now func() time.Time

	userLog *observability.StoreLogger
	postLog *observability.StoreLogger
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:   make(map[uint]*models.User),
		posts:   make(map[uint]*models.Post),
		likes:   make(map[likeKey]struct{}),
		follows: make(map[followKey]struct{}),
		now:     time.Now,
		userLog: observability.NewStoreLogger("user"),
		postLog: observability.NewStoreLogger("post"),
	}
}

// SetClock overrides the store's time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// copyUser returns a snapshot of a store-owned user record. Callers never
// receive a pointer into the store.
func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	return &c
}
