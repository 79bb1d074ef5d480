package auth

import (
	"sync"
	"time"
)

// Revoker remembers the IDs of sessions discarded by logout until their
// window would have elapsed anyway. It lives in memory only: sessions are
// ephemeral and are never persisted.
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewRevoker() *Revoker {
	return &Revoker{revoked: make(map[string]time.Time)}
}

// Revoke marks a session ID as discarded. Entries whose expiry has passed
// are pruned on the way in, so the set stays bounded by the number of
// logouts inside one session window.
func (r *Revoker) Revoke(id string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, exp := range r.revoked {
		if exp.Before(now) {
			delete(r.revoked, k)
		}
	}

	r.revoked[id] = expiresAt
}

// Revoked reports whether the session ID was discarded by a logout.
func (r *Revoker) Revoked(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok
}
