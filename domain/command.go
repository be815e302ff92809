package domain

import "strings"

// Wire tags, one command per datagram. Fixed by the protocol.
const (
	tagJoin  = "JOIN:"
	tagChat  = "MSG:"
	tagLeave = "LEAVE"
	tagList  = "LIST"
	tagPing  = "PING"

	// Pong is the bare acknowledgement payload the relay unicasts back
	// for a Ping. Clients suppress it from display.
	Pong = "PONG"
)

// Command is the closed set of inbound protocol variants. The router
// dispatches on these instead of raw string prefixes.
type Command interface {
	isCommand()
}

type JoinCommand struct {
	Name string
}

type ChatCommand struct {
	Text string
}

type LeaveCommand struct{}

type ListCommand struct{}

type PingCommand struct{}

// UnknownCommand carries anything that matched no tag. The relay ignores
// it silently; the protocol is best-effort.
type UnknownCommand struct {
	Raw string
}

func (JoinCommand) isCommand()    {}
func (ChatCommand) isCommand()    {}
func (LeaveCommand) isCommand()   {}
func (ListCommand) isCommand()    {}
func (PingCommand) isCommand()    {}
func (UnknownCommand) isCommand() {}

// Parse turns a raw datagram payload into a Command. It never fails:
// malformed input becomes UnknownCommand so the caller can drop it
// without special-casing errors at the boundary.
func Parse(payload []byte) Command {
	raw := string(payload)
	switch {
	case strings.HasPrefix(raw, tagJoin):
		return JoinCommand{Name: raw[len(tagJoin):]}
	case strings.HasPrefix(raw, tagChat):
		return ChatCommand{Text: raw[len(tagChat):]}
	case raw == tagLeave:
		return LeaveCommand{}
	case raw == tagList:
		return ListCommand{}
	case raw == tagPing:
		return PingCommand{}
	default:
		return UnknownCommand{Raw: raw}
	}
}

// The encoders below are the client-side counterparts of Parse.

func EncodeJoin(name string) []byte { return []byte(tagJoin + name) }

func EncodeChat(text string) []byte { return []byte(tagChat + text) }

func EncodeLeave() []byte { return []byte(tagLeave) }

func EncodeList() []byte { return []byte(tagList) }

func EncodePing() []byte { return []byte(tagPing) }
