// Package participant implements the client side of the relay protocol:
// joining, input translation, asynchronous receive, and keepalives.
package participant

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"log/slog"
	"net"
	"strings"
)

// Session is one participant's connection to the relay. The main input
// loop, the receive worker, and the keepalive worker all go through it;
// each only ever fires independent datagrams at the relay endpoint, so
// no extra synchronization is needed beyond the shared context.
type Session struct {
	log       *slog.Logger
	transport contract.Transport
	server    net.Addr
	name      string
}

func NewSession(log *slog.Logger, transport contract.Transport, server net.Addr, name string) *Session {
	return &Session{
		log:       log,
		transport: transport,
		server:    server,
		name:      name,
	}
}

func (s *Session) Name() string {
	return s.name
}

// Join announces this participant to the relay.
func (s *Session) Join() error {
	return s.transport.Send(domain.EncodeJoin(s.name), s.server)
}

// Leave tells the relay we are gone. Best effort: by the time we leave
// there is nobody to report a failure to.
func (s *Session) Leave() {
	if err := s.transport.Send(domain.EncodeLeave(), s.server); err != nil {
		s.log.Debug("Leave not delivered", "error", err)
	}
}

func (s *Session) Ping() error {
	return s.transport.Send(domain.EncodePing(), s.server)
}

// HandleInput translates one line of user input into a protocol message.
// Local commands are intercepted and never sent as chat text. It reports
// whether the user asked to quit.
func (s *Session) HandleInput(line string) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, nil
	}

	switch strings.ToLower(trimmed) {
	case "/quit":
		return true, nil
	case "/list":
		return false, s.transport.Send(domain.EncodeList(), s.server)
	default:
		return false, s.transport.Send(domain.EncodeChat(trimmed), s.server)
	}
}
