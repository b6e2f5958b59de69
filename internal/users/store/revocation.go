package store

import (
	"context"
	"sync"
	"time"
)

// RevocationList remembers logged-out token ids until the token would
// have expired anyway.
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> token expiry
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

// RevokeToken records jti until expiresAt.
func (t *RevocationList) RevokeToken(_ context.Context, jti string, expiresAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = expiresAt
	return nil
}

// IsTokenRevoked satisfies the auth middleware's revocation checker.
func (t *RevocationList) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	expiry, exists := t.revoked[jti]
	if !exists {
		return false, nil
	}
	return t.now().Before(expiry), nil
}

// Prune drops entries whose tokens have expired and returns how many went.
func (t *RevocationList) Prune() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	n := 0
	for jti, expiry := range t.revoked {
		if !now.Before(expiry) {
			delete(t.revoked, jti)
			n++
		}
	}
	return n
}

// RunCleanup prunes every interval until ctx is done.
func (t *RevocationList) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Prune()
		}
	}
}
