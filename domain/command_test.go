package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Recognizes_Every_Tag(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name    string
		payload string
		want    Command
	}{
		{"join", "JOIN:alice", JoinCommand{Name: "alice"}},
		{"join with empty name", "JOIN:", JoinCommand{Name: ""}},
		{"chat", "MSG:hello there", ChatCommand{Text: "hello there"}},
		{"chat containing a colon", "MSG:see: this", ChatCommand{Text: "see: this"}},
		{"leave", "LEAVE", LeaveCommand{}},
		{"list", "LIST", ListCommand{}},
		{"ping", "PING", PingCommand{}},
		{"empty payload", "", UnknownCommand{Raw: ""}},
		{"garbage", "HACK:the planet", UnknownCommand{Raw: "HACK:the planet"}},
		{"tag without separator", "JOINalice", UnknownCommand{Raw: "JOINalice"}},
		{"lowercase tag", "ping", UnknownCommand{Raw: "ping"}},
		{"leave with suffix", "LEAVE NOW", UnknownCommand{Raw: "LEAVE NOW"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, Parse([]byte(tt.payload)))
		})
	}
}

func TestEncoders_Round_Trip_Through_Parse(t *testing.T) {
	req := require.New(t)

	req.Equal(JoinCommand{Name: "alice"}, Parse(EncodeJoin("alice")))
	req.Equal(ChatCommand{Text: "hi"}, Parse(EncodeChat("hi")))
	req.Equal(LeaveCommand{}, Parse(EncodeLeave()))
	req.Equal(ListCommand{}, Parse(EncodeList()))
	req.Equal(PingCommand{}, Parse(EncodePing()))
}

func TestChatLine_Formats_Timestamp_Name_And_Text(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 8, 24, 9, 5, 59, 0, time.UTC)

	req.Equal("[09:05:59] alice: hi", ChatLine("alice", "hi", at))
}

func TestRosterLine_Lists_One_Entry_Per_User(t *testing.T) {
	req := require.New(t)

	roster := RosterLine([]string{"alice", "bob"})

	req.Equal("SYSTEM: Online users:\n  - alice\n  - bob\n", roster)
}

func TestValidateDisplayName(t *testing.T) {
	req := require.New(t)

	// Ordinary names pass, including ones made of the runes a naive
	// hex-escaped tag param would match literally ('0','x','A','D','3')
	req.NoError(ValidateDisplayName("alice"))
	req.NoError(ValidateDisplayName("Alice_42"))
	req.NoError(ValidateDisplayName("David"))
	req.NoError(ValidateDisplayName("Alex"))
	req.NoError(ValidateDisplayName("bob3"))
	req.NoError(ValidateDisplayName("0x"))

	// Protocol-breaking names are rejected
	req.Error(ValidateDisplayName(""))
	req.Error(ValidateDisplayName("a:b"))
	req.Error(ValidateDisplayName("line\nbreak"))
	req.Error(ValidateDisplayName("carriage\rreturn"))
	req.Error(ValidateDisplayName("this-name-is-way-too-long-to-be-a-handle"))
}

func TestSession_Expired_Is_A_Strict_Threshold(t *testing.T) {
	req := require.New(t)
	now := time.Now()
	timeout := 30 * time.Second
	session := Session{LastActiveAt: now.Add(-timeout)}

	// Exactly at the threshold is still alive; past it is not.
	req.False(session.Expired(now, timeout))
	req.True(session.Expired(now.Add(time.Millisecond), timeout))
}
