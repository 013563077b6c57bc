// Package transport provides byte-level connections to a synthesizer: a
// local serial port and a TCP-to-serial bridge. Both satisfy the
// protocol's Transport interface.
package transport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Synthesizer serial framing is fixed at 9600 8N1.
const (
	DefaultBaudRate    = 9600
	DefaultReadTimeout = 500 * time.Millisecond
)

// ErrTimeout reports a read that saw no data within the configured
// timeout.
var ErrTimeout = errors.New("read timeout")

// port is the slice of go.bug.st/serial.Port this package uses; tests
// substitute a fake.
type port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	ResetInputBuffer() error
	SetReadTimeout(t time.Duration) error
}

// Serial is a synthesizer connection over a local serial port.
type Serial struct {
	p    port
	name string
}

// OpenSerial opens the named port (for example /dev/ttyUSB0) at the
// synthesizer's fixed 9600 8N1 framing. A timeout of 0 selects
// DefaultReadTimeout. Stale bytes from a previous session are drained on
// open so the first exchange cannot pair with an old reply.
func OpenSerial(name string, timeout time.Duration) (*Serial, error) {
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}

	mode := &serial.Mode{
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", name, err)
	}
	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to drain %s: %w", name, err)
	}

	return &Serial{p: p, name: name}, nil
}

// Read fills p with whatever arrives within one timeout window. The
// underlying library reports a timeout as a zero-byte read; that is
// mapped to ErrTimeout so callers looping with io.ReadFull terminate.
func (s *Serial) Read(p []byte) (int, error) {
	n, err := s.p.Read(p)
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		return 0, fmt.Errorf("%s: %w", s.name, ErrTimeout)
	}
	return n, nil
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.p.Write(p)
}

// Close releases the port.
func (s *Serial) Close() error {
	return s.p.Close()
}

// Name returns the port name the connection was opened with.
func (s *Serial) Name() string {
	return s.name
}
