package store

import (
	"context"

	"prism/internal/models"
	"prism/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// CreatePost adds a post for userID at the head of the feed and increments
// the owner's Posts counter. Returns NotFound when the owner is absent.
func (s *Store) CreatePost(ctx context.Context, userID uint, content string, media models.Media, listing models.Listing) (*models.Post, error) {
	ctx, span := observability.StartSpan(ctx, "store.CreatePost",
		attribute.Int("user_id", int(userID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		observability.StoreOperationErrors.WithLabelValues("post", "create", models.CodeNotFound).Inc()
		return nil, models.NewNotFoundError("User", userID)
	}

	s.nextPostID++
	post := &models.Post{
		ID:        s.nextPostID,
		UserID:    userID,
		Content:   content,
		Media:     media,
		Listing:   listing,
		CreatedAt: s.now(),
	}
	s.posts[post.ID] = post
	s.feed = append([]uint{post.ID}, s.feed...)
	user.Posts++

	observability.StoreOperationsTotal.WithLabelValues("post", "create").Inc()
	s.postLog.LogCreate(ctx, map[string]interface{}{"post_id": post.ID, "user_id": userID})

	return copyPost(post), nil
}

// GetPostByID returns a snapshot of the post, or NotFound.
func (s *Store) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	return copyPost(post), nil
}

// GetAllPosts returns snapshots of every post, most recent first.
func (s *Store) GetAllPosts(ctx context.Context) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.feed))
	for _, id := range s.feed {
		if post, ok := s.posts[id]; ok {
			out = append(out, *copyPost(post))
		}
	}
	return out
}

// GetPostsByUserID returns snapshots of the user's posts, most recent first.
func (s *Store) GetPostsByUserID(ctx context.Context, userID uint) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Post
	for _, id := range s.feed {
		if post, ok := s.posts[id]; ok && post.UserID == userID {
			out = append(out, *copyPost(post))
		}
	}
	return out
}

// GetAllMedia returns snapshots of every post that carries media,
// most recent first.
func (s *Store) GetAllMedia(ctx context.Context) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Post
	for _, id := range s.feed {
		if post, ok := s.posts[id]; ok && post.Media.Present() {
			out = append(out, *copyPost(post))
		}
	}
	return out
}

// GetMediaForTrade returns snapshots of posts that carry media and are
// listed for sale, most recent first.
func (s *Store) GetMediaForTrade(ctx context.Context) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Post
	for _, id := range s.feed {
		if post, ok := s.posts[id]; ok && post.Media.Present() && post.Listing.IsForSale() {
			out = append(out, *copyPost(post))
		}
	}
	return out
}

// ToggleLike flips the like edge (postID, userID). Invoked twice with the
// same pair it is its own inverse. The post's Likes counter tracks the
// cardinality of the like set, floored at zero.
func (s *Store) ToggleLike(ctx context.Context, postID, userID uint) (liked bool, likes int, err error) {
	ctx, span := observability.StartSpan(ctx, "store.ToggleLike",
		attribute.Int("post_id", int(postID)),
		attribute.Int("user_id", int(userID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		observability.StoreOperationErrors.WithLabelValues("like", "toggle", models.CodeNotFound).Inc()
		return false, 0, models.NewNotFoundError("Post", postID)
	}

	key := likeKey{PostID: postID, UserID: userID}
	if _, exists := s.likes[key]; exists {
		delete(s.likes, key)
		post.Likes = max(0, post.Likes-1)
		liked = false
	} else {
		s.likes[key] = struct{}{}
		post.Likes++
		liked = true
	}

	observability.StoreOperationsTotal.WithLabelValues("like", "toggle").Inc()
	s.postLog.LogUpdate(ctx, map[string]interface{}{
		"post_id": postID,
		"user_id": userID,
		"liked":   liked,
	})

	return liked, post.Likes, nil
}

// IsLiked reports whether userID currently likes postID.
func (s *Store) IsLiked(ctx context.Context, postID, userID uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[likeKey{PostID: postID, UserID: userID}]
	return ok
}

// RecordView increments the post's view counter. Missing posts are a no-op.
func (s *Store) RecordView(ctx context.Context, postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post, ok := s.posts[postID]; ok {
		post.Views++
	}
}

// DownloadMedia increments the post's download counter without touching the
// credit ledger. This is the free-download path, distinct from purchase.
func (s *Store) DownloadMedia(ctx context.Context, postID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return false
	}
	post.Downloads++

	observability.StoreOperationsTotal.WithLabelValues("post", "download").Inc()
	return true
}
