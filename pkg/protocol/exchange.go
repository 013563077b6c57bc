package protocol

import (
	"fmt"
	"io"
)

// Transport is the byte-level connection to the synthesizer. Read blocks
// until at least one byte arrives or the transport's read timeout expires;
// the exchange helpers keep reading until the full reply is in. Any
// io.ReadWriter satisfies it.
type Transport interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}

// Query sends the address byte and reads back size payload bytes plus the
// trailing checksum byte, validating the checksum before returning the
// payload.
func Query(t Transport, address byte, size int) ([]byte, error) {
	if _, err := t.Write([]byte{address}); err != nil {
		return nil, fmt.Errorf("failed to send query 0x%02X: %w", address, err)
	}

	reply := make([]byte, size+1)
	if _, err := io.ReadFull(t, reply); err != nil {
		return nil, fmt.Errorf("failed to read reply to 0x%02X: %w", address, err)
	}

	payload, sum := reply[:size], reply[size]
	if !VerifyChecksum(payload, sum) {
		return nil, &ChecksumError{Address: address, Want: Checksum(payload), Got: sum}
	}
	return payload, nil
}

// Command sends an address byte, payload and checksum, then waits for the
// single status byte. A nil error means the device acknowledged the write.
func Command(t Transport, address byte, payload []byte) error {
	frame := make([]byte, 0, len(payload)+2)
	frame = append(frame, address)
	frame = append(frame, payload...)
	frame = append(frame, Checksum(frame))

	n, err := t.Write(frame)
	if err != nil {
		return fmt.Errorf("failed to send command 0x%02X: %w", address, err)
	}
	if n != len(frame) {
		return fmt.Errorf("short write on command 0x%02X: wrote %d of %d bytes", address, n, len(frame))
	}

	var status [1]byte
	if _, err := io.ReadFull(t, status[:]); err != nil {
		return fmt.Errorf("failed to read status for 0x%02X: %w", address, err)
	}
	if status[0] != ACK {
		return &StatusError{Address: address, Status: status[0]}
	}
	return nil
}
