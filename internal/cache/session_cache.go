package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long a token→user mapping lives in Redis. The
// user_sessions table stays authoritative; this only skips the lookup on the
// hot path.
const SessionTTL = 15 * time.Minute

type SessionCache struct {
	rdb *redis.Client
}

func NewSessionCache(rdb *redis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

// key hashes the raw token so bearer credentials never land in Redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// GetUserID returns the cached user id for token, if present.
func (s *SessionCache) GetUserID(ctx context.Context, token string) (uint, bool) {
	if s == nil || s.rdb == nil {
		return 0, false
	}
	v, err := s.rdb.Get(ctx, key(token)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *SessionCache) Put(ctx context.Context, token string, userID uint) {
	if s == nil || s.rdb == nil {
		return
	}
	s.rdb.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), SessionTTL)
}

// Invalidate drops the cached mapping, used on signout.
func (s *SessionCache) Invalidate(ctx context.Context, token string) {
	if s == nil || s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, key(token))
}
