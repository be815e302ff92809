package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"log/slog"
	"net"
	"time"

	"github.com/samber/lo"
)

// Router interprets one inbound datagram at a time: parse the tag,
// mutate the registry, then send against a snapshot. It is driven
// serially by the receive worker; the registry mutex is what keeps it
// consistent with the concurrently-running sweeper.
type Router struct {
	log       *slog.Logger
	registry  contract.IRegistry
	transport contract.Transport
	stats     *observability.RelayStats
	expiry    time.Duration
	clock     func() time.Time
}

func NewRouter(
	log *slog.Logger,
	registry contract.IRegistry,
	transport contract.Transport,
	stats *observability.RelayStats,
	expiry time.Duration,
) *Router {
	return &Router{
		log:       log,
		registry:  registry,
		transport: transport,
		stats:     stats,
		expiry:    expiry,
		clock:     time.Now,
	}
}

// WithClock swaps the time source, for tests.
func (r *Router) WithClock(clock func() time.Time) *Router {
	r.clock = clock
	return r
}

// HandleDatagram dispatches one inbound payload. It never returns an
// error: protocol-level problems are dropped by design, and a send
// failure to one endpoint is a warning that must not escalate.
func (r *Router) HandleDatagram(payload []byte, from net.Addr) {
	r.stats.IncrDatagramsIn()

	switch cmd := domain.Parse(payload).(type) {
	case domain.JoinCommand:
		r.handleJoin(cmd.Name, from)
	case domain.ChatCommand:
		r.handleChat(cmd.Text, from)
	case domain.LeaveCommand:
		r.handleLeave(from)
	case domain.ListCommand:
		r.handleList(from)
	case domain.PingCommand:
		r.handlePing(from)
	case domain.UnknownCommand:
		// Best-effort protocol: no reply, no error.
		r.stats.IncrDropped()
		r.log.Debug("Ignoring unrecognized datagram", "from", from.String())
	}
}

func (r *Router) handleJoin(name string, from net.Addr) {
	if err := domain.ValidateDisplayName(name); err != nil {
		r.stats.IncrDropped()
		r.log.Debug("Rejected join with invalid name", "from", from.String())
		return
	}

	session := r.registry.Upsert(from, name)
	r.stats.IncrJoins()
	r.log.Info("Client joined", "name", name, "endpoint", session.Key, "session", session.ID)

	// Snapshot after the upsert so the announcement set is consistent
	// with the registry state that includes the joiner.
	r.Broadcast(domain.JoinedLine(name), session.Key)
	r.unicast(domain.WelcomeLine(name), from)
}

func (r *Router) handleChat(text string, from net.Addr) {
	key := from.String()
	session, ok := r.registry.Get(key)
	if !ok {
		// Not a recognized participant: a no-op, not an error.
		r.stats.IncrDropped()
		return
	}
	r.registry.Touch(key)

	line := domain.ChatLine(session.Name, text, r.clock())
	r.log.Info(line)
	r.Broadcast(line, key)
}

func (r *Router) handleLeave(from net.Addr) {
	session, ok := r.registry.Remove(from.String())
	if !ok {
		return
	}
	r.stats.IncrLeaves()
	r.log.Info("Client left", "name", session.Name, "endpoint", session.Key)
	r.Broadcast(domain.LeftLine(session.Name), session.Key)
}

func (r *Router) handleList(from net.Addr) {
	active := r.registry.ActiveSnapshot(r.clock(), r.expiry)
	names := lo.Map(active, func(s domain.Session, _ int) string {
		return s.Name
	})
	r.unicast(domain.RosterLine(names), from)
}

func (r *Router) handlePing(from net.Addr) {
	if !r.registry.Touch(from.String()) {
		r.stats.IncrDropped()
		return
	}
	r.unicast(domain.Pong, from)
}

// Broadcast sends text to every session in a fresh snapshot except the
// excluded endpoint key (empty string excludes nobody). Sends run after
// the registry lock is released; a session removed between snapshot and
// send just produces a best-effort send to a stale endpoint.
func (r *Router) Broadcast(text string, excludeKey string) {
	r.stats.IncrBroadcasts()
	for _, session := range r.registry.Snapshot() {
		if session.Key == excludeKey {
			continue
		}
		r.unicast(text, session.Addr)
	}
}

func (r *Router) unicast(text string, to net.Addr) {
	if err := r.transport.Send([]byte(text), to); err != nil {
		r.stats.IncrSendErrors()
		r.log.Warn("Send failed", "to", to.String(), "error", err)
		return
	}
	r.stats.IncrDatagramsOut()
}
