// Package runtime owns the relay's live state and datagram routing.
// It contains no wire parsing and no rendering; those live in domain.
package runtime

import (
	"chat-relay/domain"
	"net"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Registry is the single owner of all current sessions, keyed by endpoint.
// Every read and mutation goes through one mutex; critical sections are
// map operations only, never network I/O. Callers that need to send use
// a snapshot taken here and iterate it after the lock is released.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	clock    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]domain.Session),
		clock:    time.Now,
	}
}

// WithClock swaps the time source, for tests.
func (r *Registry) WithClock(clock func() time.Time) *Registry {
	r.clock = clock
	return r
}

// Upsert creates or replaces the session for addr. A re-join from the
// same endpoint silently replaces the previous name; there is never more
// than one session per endpoint.
func (r *Registry) Upsert(addr net.Addr, name string) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := domain.NewSession(addr, name, r.clock())
	r.sessions[session.Key] = session
	return session
}

// Touch refreshes the session's last activity and reports whether the
// endpoint was known at all.
func (r *Registry) Touch(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		return false
	}
	session.LastActiveAt = r.clock()
	r.sessions[key] = session
	return true
}

// Get returns a copy of the endpoint's session, if present.
func (r *Registry) Get(key string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[key]
	return session, ok
}

// Remove deletes the endpoint's session and returns it if it existed.
func (r *Registry) Remove(key string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if ok {
		delete(r.sessions, key)
	}
	return session, ok
}

// Snapshot returns point-in-time copies of every session so callers can
// iterate and send without holding the registry lock.
func (r *Registry) Snapshot() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Values(r.sessions)
}

// ActiveSnapshot is Snapshot restricted to sessions that have not expired
// as of now. An expired-but-not-yet-swept session is excluded here even
// though it is still physically present.
func (r *Registry) ActiveSnapshot(now time.Time, expiry time.Duration) []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(lo.Values(r.sessions), func(s domain.Session, _ int) bool {
		return !s.Expired(now, expiry)
	})
}

// RemoveExpired evicts every session whose last activity aged past expiry
// and returns the evicted sessions. Check and delete happen under the
// same lock, so a Touch that lands before the check is never lost and a
// Touch that lands after simply misses an already-evicted session.
func (r *Registry) RemoveExpired(now time.Time, expiry time.Duration) []domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []domain.Session
	for key, session := range r.sessions {
		if session.Expired(now, expiry) {
			expired = append(expired, session)
			delete(r.sessions, key)
		}
	}
	return expired
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
