package transport

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// TCP is a synthesizer connection through a TCP-to-serial bridge such as
// ser2net or a terminal server.
type TCP struct {
	conn    net.Conn
	addr    string
	timeout time.Duration
}

// DialTCP connects to a bridge at addr (host:port). A timeout of 0
// selects DefaultReadTimeout; it bounds the dial and each read.
func DialTCP(addr string, timeout time.Duration) (*TCP, error) {
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &TCP{conn: conn, addr: addr, timeout: timeout}, nil
}

// Read applies the timeout as a fresh deadline on each call and maps
// deadline expiry to ErrTimeout.
func (t *TCP) Read(p []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, fmt.Errorf("failed to set read deadline on %s: %w", t.addr, err)
	}
	n, err := t.conn.Read(p)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return n, fmt.Errorf("%s: %w", t.addr, ErrTimeout)
		}
	}
	return n, err
}

func (t *TCP) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

// Close shuts down the bridge connection.
func (t *TCP) Close() error {
	return t.conn.Close()
}

// Addr returns the bridge address the connection was dialed with.
func (t *TCP) Addr() string {
	return t.addr
}
