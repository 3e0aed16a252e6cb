package session

import (
	"context"
	"testing"
	"time"

	"prism/internal/models"
	"prism/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-at-least-32-chars-long!!")

func newTestRegistry(t *testing.T) (*Registry, *store.Store, *models.User) {
	t.Helper()
	s := store.New()
	user, err := s.CreateUser(context.Background(), store.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Credits: 100,
	})
	require.NoError(t, err)
	return NewRegistry(s, testSecret, DefaultTTL), s, user
}

func TestCreateThenResolve(t *testing.T) {
	r, _, user := newTestRegistry(t)
	ctx := context.Background()

	token, err := r.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := r.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, 1, r.Len())
}

func TestResolve_ReflectsLiveUserRecord(t *testing.T) {
	r, s, user := newTestRegistry(t)
	ctx := context.Background()

	token, err := r.Create(ctx, user)
	require.NoError(t, err)

	_, err = s.AddCredits(ctx, user.ID, 400)
	require.NoError(t, err)

	resolved, err := r.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 500, resolved.Credits)
}

func TestDestroyThenResolve(t *testing.T) {
	r, _, user := newTestRegistry(t)
	ctx := context.Background()

	token, err := r.Create(ctx, user)
	require.NoError(t, err)

	r.Destroy(ctx, token)

	_, err = r.Resolve(ctx, token)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, 0, r.Len())

	// Destroying again, or destroying garbage, is a no-op.
	r.Destroy(ctx, token)
	r.Destroy(ctx, "not-a-token")
}

func TestResolve_ExpiredSessionEvicted(t *testing.T) {
	r, _, user := newTestRegistry(t)
	ctx := context.Background()

	now := time.Now()
	r.SetClock(func() time.Time { return now })

	token, err := r.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	// Jump past the TTL; the stale entry is evicted lazily at resolve time.
	r.SetClock(func() time.Time { return now.Add(DefaultTTL + time.Minute) })

	_, err = r.Resolve(ctx, token)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, 0, r.Len())
}

func TestResolve_RejectsForgedTokens(t *testing.T) {
	r, _, user := newTestRegistry(t)
	ctx := context.Background()

	token, err := r.Create(ctx, user)
	require.NoError(t, err)

	_, err = r.Resolve(ctx, "garbage")
	assert.True(t, models.IsUnauthorized(err))

	_, err = r.Resolve(ctx, token+"tampered")
	assert.True(t, models.IsUnauthorized(err))

	// Same claims signed with a different secret must not resolve.
	other := NewRegistry(store.New(), []byte("another-secret-also-32-chars-long!!!"), DefaultTTL)
	otherToken, err := other.Create(ctx, user)
	require.NoError(t, err)
	_, err = r.Resolve(ctx, otherToken)
	assert.True(t, models.IsUnauthorized(err))
}

func TestCreate_MultipleSessionsPerUser(t *testing.T) {
	r, _, user := newTestRegistry(t)
	ctx := context.Background()

	first, err := r.Create(ctx, user)
	require.NoError(t, err)
	second, err := r.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, r.Len())

	// Destroying one leaves the other valid.
	r.Destroy(ctx, first)
	_, err = r.Resolve(ctx, second)
	assert.NoError(t, err)
}

func TestResolve_UserRemovedFromSource(t *testing.T) {
	s := store.New()
	r := NewRegistry(s, testSecret, DefaultTTL)
	ctx := context.Background()

	ghost := &models.User{ID: 404, Username: "ghost"}
	token, err := r.Create(ctx, ghost)
	require.NoError(t, err)

	_, err = r.Resolve(ctx, token)
	assert.True(t, models.IsUnauthorized(err))
}
