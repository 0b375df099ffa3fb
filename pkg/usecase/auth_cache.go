package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
)

const (
	authCacheTTL = 5 * time.Minute
)

type cachedUser struct {
	user      *auth.User
	expiresAt time.Time
}

// authCache remembers validated tokens by digest so the raw token is never a map key
type authCache struct {
	cache sync.Map
}

func newAuthCache() *authCache {
	return &authCache{}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c *authCache) get(token string, now time.Time) (*auth.User, bool) {
	key := tokenDigest(token)
	val, ok := c.cache.Load(key)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedUser)
	if now.After(cached.expiresAt) {
		c.cache.Delete(key)
		return nil, false
	}

	user := *cached.user
	return &user, true
}

// set keeps the user until the token expires or the TTL elapses, whichever is first
func (c *authCache) set(token string, user *auth.User, tokenExpiry, now time.Time) {
	expiresAt := now.Add(authCacheTTL)
	if !tokenExpiry.IsZero() && tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry
	}

	copied := *user
	c.cache.Store(tokenDigest(token), &cachedUser{
		user:      &copied,
		expiresAt: expiresAt,
	})
}

// purge drops every entry expired at now and returns how many were removed
func (c *authCache) purge(now time.Time) int {
	removed := 0
	c.cache.Range(func(key, val any) bool {
		if now.After(val.(*cachedUser).expiresAt) {
			c.cache.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
