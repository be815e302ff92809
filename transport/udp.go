// Package transport implements the datagram boundary over UDP.
package transport

import (
	"chat-relay/contract"
	"chat-relay/errors"
	gerrors "errors"
	"fmt"
	"net"
	"time"
)

// maxDatagramSize bounds a single protocol datagram. One command or one
// rendered line always fits.
const maxDatagramSize = 1024

// Ensure *UDP implements the contract.Transport interface at compile time.
var _ contract.Transport = (*UDP)(nil)

// UDP wraps a single UDP socket. The relay listens on a fixed port; a
// participant listens on an ephemeral one (port 0) and sends to the relay.
type UDP struct {
	conn *net.UDPConn
}

// Listen binds a UDP socket on host:port. Port 0 picks an ephemeral port,
// which is how participants obtain their own endpoint.
func Listen(host string, port int) (*UDP, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("resolving %s:%d: %w", host, port, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", addr, err)
	}
	return &UDP{conn: conn}, nil
}

// Resolve turns host:port into a sendable endpoint.
func Resolve(host string, port int) (net.Addr, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("resolving %s:%d: %w", host, port, err)
	}
	return addr, nil
}

// Send fires one datagram at the endpoint. Loss is accepted per the
// transport contract; callers treat a returned error as a warning.
func (u *UDP) Send(payload []byte, to net.Addr) error {
	udpAddr, ok := to.(*net.UDPAddr)
	if !ok {
		return fmt.Errorf("not a UDP endpoint: %v", to)
	}
	if _, err := u.conn.WriteToUDP(payload, udpAddr); err != nil {
		return fmt.Errorf("sending to %s: %w", to, err)
	}
	return nil
}

// Receive blocks for at most timeout waiting for one datagram. It returns
// errors.ErrReceiveTimeout when nothing arrived, and errors.ErrTransportClosed
// once the socket has been closed. The buffer is allocated per call so a
// payload handed to the caller is never overwritten by the next read.
func (u *UDP) Receive(timeout time.Duration) ([]byte, net.Addr, error) {
	if err := u.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		// Setting a deadline on a closed socket fails too; map it so the
		// receive loops see the same sentinel as on the read path.
		if gerrors.Is(err, net.ErrClosed) {
			return nil, nil, errors.ErrTransportClosed
		}
		return nil, nil, err
	}
	buf := make([]byte, maxDatagramSize)
	n, from, err := u.conn.ReadFromUDP(buf)
	if err != nil {
		var netErr net.Error
		if gerrors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil, errors.ErrReceiveTimeout
		}
		if gerrors.Is(err, net.ErrClosed) {
			return nil, nil, errors.ErrTransportClosed
		}
		return nil, nil, err
	}
	return buf[:n], from, nil
}

func (u *UDP) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}

func (u *UDP) Close() error {
	return u.conn.Close()
}
