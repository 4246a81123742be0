// Package session manages the console's admin bearer token for the FSEL
// gateways. One token is shared by all requests; it expires at midnight
// local time regardless of what the token itself claims.
package session

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/fsel/admin-console-api/pkg/logger"
	"github.com/fsel/admin-console-api/pkg/metrics"
)

const tokenCacheKey = "admin_token"

func init() {
	gob.Register(storedToken{})
}

type storedToken struct {
	Token    string
	IssuedAt time.Time
}

// LoginFunc performs one admin login and returns the bearer token. The
// manager never retries it: a failed login surfaces immediately.
type LoginFunc func(ctx context.Context) (string, error)

// Manager caches the admin token and refreshes it lazily. It persists the
// token to disk so a restart inside the same calendar day reuses it.
type Manager struct {
	mu        sync.Mutex
	cache     *gocache.Cache
	login     LoginFunc
	cacheFile string

	// now is swappable in tests.
	now func() time.Time
}

// NewManager creates a Manager and loads any persisted token. A load
// failure is logged and ignored; the next Token call just logs in fresh.
func NewManager(login LoginFunc, cacheFile string) *Manager {
	m := &Manager{
		cache:     gocache.New(gocache.NoExpiration, 10*time.Minute),
		login:     login,
		cacheFile: cacheFile,
		now:       time.Now,
	}
	if cacheFile != "" {
		if err := m.cache.LoadFile(cacheFile); err != nil && !os.IsNotExist(err) {
			logger.Log.Warn("Failed to load persisted admin token, starting fresh",
				zap.String("file", cacheFile),
				zap.Error(err))
		}
	}
	return m
}

// Token returns a valid admin bearer token, logging in if the cached one is
// missing or stale. A token is valid only if it was issued on the current
// local calendar day; yesterday's token is stale even if only minutes old.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tok, ok := m.current(); ok {
		return tok, nil
	}

	m.cache.Delete(tokenCacheKey)

	token, err := m.login(ctx)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		return "", fmt.Errorf("admin login failed: %w", err)
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()

	m.cache.Set(tokenCacheKey, storedToken{Token: token, IssuedAt: m.now()}, gocache.NoExpiration)
	m.persist()
	return token, nil
}

// Invalidate drops the cached token. The next Token call logs in again.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(tokenCacheKey)
	m.persist()
}

// HasValidToken reports whether a usable token is currently cached, without
// triggering a login.
func (m *Manager) HasValidToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.current()
	return ok
}

func (m *Manager) current() (string, bool) {
	v, found := m.cache.Get(tokenCacheKey)
	if !found {
		return "", false
	}
	stored, ok := v.(storedToken)
	if !ok || stored.Token == "" {
		return "", false
	}
	dayStart := startOfDay(m.now())
	if stored.IssuedAt.Before(dayStart) {
		return "", false
	}
	return stored.Token, true
}

func (m *Manager) persist() {
	if m.cacheFile == "" {
		return
	}
	if err := m.cache.SaveFile(m.cacheFile); err != nil {
		logger.Log.Warn("Failed to persist admin token",
			zap.String("file", m.cacheFile),
			zap.Error(err))
	}
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Local().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Local().Location())
}
