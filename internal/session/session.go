package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umajibakery/reservations/internal/redisx"
)

var ErrBadCredentials = errors.New("invalid username or password")

// Store is the slice of the redis client the session needs. Narrowed so
// tests can stand in a map-backed fake.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Manager gates the admin views behind a static credential pair and a
// time-boxed flag in Redis. This mirrors the shop's single-operator
// setup: one flag, one login timestamp, no per-user tokens. The
// credential check is a demo placeholder and unsuitable for anything
// beyond that.
type Manager struct {
	Redis    Store
	Username string
	Password string
	TTL      time.Duration // 24h
}

// Login validates the credential pair. On a mismatch neither session
// entry is written.
func (m *Manager) Login(ctx context.Context, user, pass string) error {
	if user != m.Username || pass != m.Password {
		return ErrBadCredentials
	}
	return m.Redis.MSet(ctx,
		redisx.KeyAdminAuthenticated, "true",
		redisx.KeyAdminLoginTime, strconv.FormatInt(time.Now().UnixMilli(), 10),
	).Err()
}

// Valid reports whether an admin session is active. An expired session
// is cleared on the spot and reported as logged out.
func (m *Manager) Valid(ctx context.Context) (bool, error) {
	flag, err := m.Redis.Get(ctx, redisx.KeyAdminAuthenticated).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	raw, err := m.Redis.Get(ctx, redisx.KeyAdminLoginTime).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	loginMillis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || flag != "true" || expired(loginMillis, time.Now(), m.ttl()) {
		// Silent demotion: clear both entries, the caller re-shows the
		// login screen.
		_ = m.Logout(ctx)
		return false, nil
	}
	return true, nil
}

// Logout clears both session entries.
func (m *Manager) Logout(ctx context.Context) error {
	return m.Redis.Del(ctx, redisx.KeyAdminAuthenticated, redisx.KeyAdminLoginTime).Err()
}

func (m *Manager) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return redisx.SessionTTL
}

// expired reports whether a login stamped at loginMillis has outlived ttl.
func expired(loginMillis int64, now time.Time, ttl time.Duration) bool {
	return now.Sub(time.UnixMilli(loginMillis)) >= ttl
}
