// Package domain contains core concepts of the chat relay.
// This file defines the Session entity and its liveness rule.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"net"
	"time"

	"github.com/google/uuid"
)

// Session is the relay-side record of a currently-present participant.
// The endpoint string is the unique key; the name is immutable for the
// session's lifetime.
type Session struct {
	ID           uuid.UUID // log correlation only, never part of the key
	Key          string
	Addr         net.Addr
	Name         string
	LastActiveAt time.Time
}

// NewSession builds a session for the given endpoint, active as of now.
func NewSession(addr net.Addr, name string, now time.Time) Session {
	return Session{
		ID:           uuid.New(),
		Key:          addr.String(),
		Addr:         addr,
		Name:         name,
		LastActiveAt: now,
	}
}

// Expired reports whether the session's last activity is older than timeout.
func (s Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActiveAt) > timeout
}
