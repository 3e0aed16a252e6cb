// Package session implements the session registry: the mapping from opaque
// signed tokens to authenticated users.
package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"prism/internal/models"
	"prism/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long a session stays valid after creation.
const DefaultTTL = 7 * 24 * time.Hour

// UserSource resolves user IDs to live user records. The registry reads
// users but never mutates them.
type UserSource interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type entry struct {
	userID    uint
	createdAt time.Time
}

// Registry owns session records. Tokens are HS256-signed JWTs whose jti
// claim keys the registry entry: the signature makes the credential
// unforgeable, the registry entry keeps it revocable.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry

	users  UserSource
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry creates a Registry resolving users through src. A ttl of
// zero or less falls back to DefaultTTL.
func NewRegistry(src UserSource, secret []byte, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		sessions: make(map[string]entry),
		users:    src,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the registry's time source. Intended for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Create opens a new session for user and returns the signed token the
// caller hands to the client as its credential. There is no limit on
// concurrent sessions per user.
func (r *Registry) Create(ctx context.Context, user *models.User) (string, error) {
	jti := uuid.NewString()

	r.mu.Lock()
	createdAt := r.now()
	r.sessions[jti] = entry{userID: user.ID, createdAt: createdAt}
	r.mu.Unlock()

	claims := jwt.MapClaims{
		"jti": jti,
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"iat": createdAt.Unix(),
		"exp": createdAt.Add(r.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		r.mu.Lock()
		delete(r.sessions, jti)
		r.mu.Unlock()
		return "", models.NewInternalError(fmt.Errorf("sign session token: %w", err))
	}

	observability.ActiveSessions.Inc()
	return token, nil
}

// Resolve verifies the token and returns the live user record behind the
// session. Expired entries are lazily evicted here; there is no background
// sweep. Any failure yields an UNAUTHORIZED error.
func (r *Registry) Resolve(ctx context.Context, token string) (*models.User, error) {
	jti, err := r.parseJTI(token)
	if err != nil {
		return nil, models.NewUnauthorizedError("invalid or expired session token")
	}

	r.mu.Lock()
	sess, ok := r.sessions[jti]
	if ok && r.now().Sub(sess.createdAt) > r.ttl {
		delete(r.sessions, jti)
		observability.ActiveSessions.Dec()
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return nil, models.NewUnauthorizedError("session not found or expired")
	}

	user, err := r.users.GetUserByID(ctx, sess.userID)
	if err != nil {
		return nil, models.NewUnauthorizedError("session user no longer exists")
	}
	return user, nil
}

// Destroy removes the session behind the token. Destroying an absent or
// malformed token is a no-op.
func (r *Registry) Destroy(ctx context.Context, token string) {
	jti, err := r.parseJTI(token)
	if err != nil {
		return
	}

	r.mu.Lock()
	if _, ok := r.sessions[jti]; ok {
		delete(r.sessions, jti)
		observability.ActiveSessions.Dec()
	}
	r.mu.Unlock()
}

// Len returns the number of live sessions, including any not yet lazily
// evicted.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) parseJTI(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", fmt.Errorf("token missing jti")
	}
	return jti, nil
}
