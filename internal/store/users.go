package store

import (
	"context"
	"strings"

	"prism/internal/models"
	"prism/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// CreateUserInput carries the profile fields for a new account. Counters
// and economic fields start from the given values so demo fixtures can
// reproduce existing accounts; they must not be negative.
type CreateUserInput struct {
	Name       string
	Username   string
	Email      string
	Bio        string
	Avatar     string
	CoverImage string
	Website    string
	Location   string
	Verified   bool

	Credits         int
	TotalEarnings   int
	TradesCompleted int
}

// CreateUser adds a new account and returns a snapshot of it.
func (s *Store) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	ctx, span := observability.StartSpan(ctx, "store.CreateUser")
	defer span.End()

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" {
		return nil, models.NewInvalidOperationError("username and email are required")
	}
	if in.Credits < 0 || in.TotalEarnings < 0 || in.TradesCompleted < 0 {
		return nil, models.NewInvalidOperationError("economic fields must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, models.NewInvalidOperationError("email already registered")
		}
	}

	s.nextUserID++
	user := &models.User{
		ID:              s.nextUserID,
		Name:            in.Name,
		Username:        username,
		Email:           email,
		Bio:             in.Bio,
		Avatar:          in.Avatar,
		CoverImage:      in.CoverImage,
		Website:         in.Website,
		Location:        in.Location,
		Verified:        in.Verified,
		JoinedAt:        s.now(),
		Credits:         in.Credits,
		TotalEarnings:   in.TotalEarnings,
		TradesCompleted: in.TradesCompleted,
	}
	s.users[user.ID] = user

	observability.StoreOperationsTotal.WithLabelValues("user", "create").Inc()
	s.userLog.LogCreate(ctx, map[string]interface{}{"user_id": user.ID, "username": user.Username})

	return copyUser(user), nil
}

// GetUserByID returns a snapshot of the user, or NotFound.
func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return copyUser(user), nil
}

// GetUserByEmail returns the user registered under email, or NotFound.
// Lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, models.NewNotFoundError("User", email)
}

// ListUsers returns snapshots of all users ordered by ID.
func (s *Store) ListUsers(ctx context.Context) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for id := uint(1); id <= s.nextUserID; id++ {
		if user, ok := s.users[id]; ok {
			out = append(out, *copyUser(user))
		}
	}
	return out
}

// ToggleFollow flips the directional follow edge follower -> followed.
// The counter pair (followed.Followers, follower.Following) is updated
// atomically; a concurrent reader never observes one without the other.
// Self-follows are rejected.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followedID uint) (following bool, followers int, err error) {
	ctx, span := observability.StartSpan(ctx, "store.ToggleFollow",
		attribute.Int("follower_id", int(followerID)),
		attribute.Int("followed_id", int(followedID)))
	defer span.End()

	if followerID == followedID {
		err := models.NewInvalidOperationError("users cannot follow themselves")
		observability.StoreOperationErrors.WithLabelValues("follow", "toggle", models.CodeInvalidOperation).Inc()
		return false, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	follower, ok := s.users[followerID]
	if !ok {
		return false, 0, models.NewNotFoundError("User", followerID)
	}
	followed, ok := s.users[followedID]
	if !ok {
		return false, 0, models.NewNotFoundError("User", followedID)
	}

	key := followKey{FollowerID: followerID, FollowedID: followedID}
	if _, exists := s.follows[key]; exists {
		delete(s.follows, key)
		followed.Followers = max(0, followed.Followers-1)
		follower.Following = max(0, follower.Following-1)
		following = false
	} else {
		s.follows[key] = struct{}{}
		followed.Followers++
		follower.Following++
		following = true
	}

	observability.StoreOperationsTotal.WithLabelValues("follow", "toggle").Inc()
	s.userLog.LogUpdate(ctx, map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
		"following":   following,
	})

	return following, followed.Followers, nil
}

// IsFollowing reports whether the follow edge follower -> followed exists.
func (s *Store) IsFollowing(ctx context.Context, followerID, followedID uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.follows[followKey{FollowerID: followerID, FollowedID: followedID}]
	return ok
}
