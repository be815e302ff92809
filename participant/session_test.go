package participant

import (
	"bytes"
	"chat-relay/errors"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu   sync.Mutex
	sent []string
}

func (t *fakeTransport) Send(payload []byte, _ net.Addr) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, string(payload))
	return nil
}

func (t *fakeTransport) Receive(time.Duration) ([]byte, net.Addr, error) {
	return nil, nil, errors.ErrReceiveTimeout
}

func (t *fakeTransport) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 7000}
}

func (t *fakeTransport) Close() error { return nil }

func (t *fakeTransport) payloads() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.sent...)
}

func server() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5001}
}

func newTestSession(transport *fakeTransport) *Session {
	return NewSession(logs.GetLoggerFromString("error"), transport, server(), "alice")
}

func TestSession_Join_And_Leave_Send_Protocol_Messages(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	session := newTestSession(transport)

	req.NoError(session.Join())
	session.Leave()

	req.Equal([]string{"JOIN:alice", "LEAVE"}, transport.payloads())
}

func TestSession_HandleInput_Translates_Local_Commands(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	session := newTestSession(transport)

	// Chat text is tagged, local commands are intercepted
	quit, err := session.HandleInput("hello everyone")
	req.NoError(err)
	req.False(quit)

	quit, err = session.HandleInput("/list")
	req.NoError(err)
	req.False(quit)

	quit, err = session.HandleInput("/LIST")
	req.NoError(err)
	req.False(quit)

	quit, err = session.HandleInput("/quit")
	req.NoError(err)
	req.True(quit)

	// Blank input sends nothing
	quit, err = session.HandleInput("   ")
	req.NoError(err)
	req.False(quit)

	req.Equal([]string{"MSG:hello everyone", "LIST", "LIST"}, transport.payloads())
}

func TestRenderer_Suppresses_Pong_And_Prints_Everything_Else(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	renderer := NewRenderer(&out, false)

	req.False(renderer.Render([]byte("PONG")))
	req.True(renderer.Render([]byte("SYSTEM: bob has joined the chat!")))
	req.True(renderer.Render([]byte("[12:00:00] bob: hi")))

	req.Equal("SYSTEM: bob has joined the chat!\n[12:00:00] bob: hi\n", out.String())
}

func TestKeepaliveWorker_Pings_On_Each_Tick(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	session := newTestSession(transport)
	worker := NewKeepaliveWorker(logs.GetLoggerFromString("error"), session, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()
	req.NoError(worker.Run(ctx))

	var pings int
	for _, payload := range transport.payloads() {
		if payload == "PING" {
			pings++
		}
	}
	req.GreaterOrEqual(pings, 3)
}

func TestReceiveWorker_Stops_When_Context_Is_Canceled(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	renderer := NewRenderer(&bytes.Buffer{}, false)
	worker := NewReceiveWorker(logs.GetLoggerFromString("error"), transport, renderer, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("receive worker did not notice cancellation")
	}
}
