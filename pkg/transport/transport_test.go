package transport

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// fakePort scripts the underlying serial port. An exhausted script
// behaves like the real library on timeout: a zero-byte read with a nil
// error.
type fakePort struct {
	reads   [][]byte
	readIdx int
	written []byte
	closed  bool
	drained bool
	timeout time.Duration
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readIdx >= len(f.reads) {
		return 0, nil
	}
	n := copy(p, f.reads[f.readIdx])
	f.readIdx++
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.drained = true
	return nil
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return nil
}

func TestSerialReadDelivers(t *testing.T) {
	f := &fakePort{reads: [][]byte{{0xAA, 0xBB, 0xCC}}}
	s := &Serial{p: f, name: "fake"}

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 3 || buf[0] != 0xAA || buf[2] != 0xCC {
		t.Errorf("Read = %d bytes % X, want 3 bytes AA BB CC", n, buf[:n])
	}
}

func TestSerialReadTimeout(t *testing.T) {
	s := &Serial{p: &fakePort{}, name: "fake"}

	buf := make([]byte, 4)
	_, err := s.Read(buf)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

// A device that stops responding mid-reply must not hang a full-frame
// read: the zero-byte timeout has to surface as an error or io.ReadFull
// would retry forever.
func TestSerialReadFullStopsOnTimeout(t *testing.T) {
	f := &fakePort{reads: [][]byte{{0x01, 0x02}}}
	s := &Serial{p: f, name: "fake"}

	buf := make([]byte, 4)
	n, err := io.ReadFull(s, buf)
	if n != 2 {
		t.Errorf("read %d bytes before the timeout, want 2", n)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestSerialWrite(t *testing.T) {
	f := &fakePort{}
	s := &Serial{p: f, name: "fake"}

	if _, err := s.Write([]byte{0x86}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if len(f.written) != 1 || f.written[0] != 0x86 {
		t.Errorf("port saw % X, want 86", f.written)
	}
}

func TestSerialClose(t *testing.T) {
	f := &fakePort{}
	s := &Serial{p: f, name: "fake"}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !f.closed {
		t.Error("Close did not release the port")
	}
}

func TestTCPReadDelivers(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go server.Write([]byte{0x06})

	tr := &TCP{conn: client, addr: "pipe", timeout: time.Second}
	defer tr.Close()

	buf := make([]byte, 1)
	n, err := tr.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 1 || buf[0] != 0x06 {
		t.Errorf("Read = %d bytes % X, want 1 byte 06", n, buf[:n])
	}
}

func TestTCPReadTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	tr := &TCP{conn: client, addr: "pipe", timeout: 20 * time.Millisecond}
	defer tr.Close()

	buf := make([]byte, 1)
	_, err := tr.Read(buf)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestDialTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		conn.Write([]byte{0x06})
	}()

	tr, err := DialTCP(ln.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	if _, err := tr.Write([]byte{0x40}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf := make([]byte, 1)
	if _, err := tr.Read(buf); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if buf[0] != 0x06 {
		t.Errorf("bridge echoed %#02x, want 0x06", buf[0])
	}
}
