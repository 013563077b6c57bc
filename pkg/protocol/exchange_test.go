package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockTransport plays the device side of an exchange: reads are served
// from queued reply buffers in order, writes are recorded for inspection.
type mockTransport struct {
	writes   [][]byte
	replies  [][]byte
	replyIdx int
	readErr  error
	writeErr error
}

func (m *mockTransport) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	w := make([]byte, len(p))
	copy(w, p)
	m.writes = append(m.writes, w)
	return len(p), nil
}

func (m *mockTransport) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.replyIdx >= len(m.replies) {
		return 0, io.EOF
	}
	reply := m.replies[m.replyIdx]
	n := copy(p, reply)
	if n == len(reply) {
		m.replyIdx++
	} else {
		m.replies[m.replyIdx] = reply[n:]
	}
	return n, nil
}

func (m *mockTransport) queueReply(payload ...byte) {
	m.replies = append(m.replies, payload)
}

func TestQuery(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(0x00, 0x98, 0x96, 0x80, 0xAE) // 10 MHz, checksum 0xAE

	payload, err := Query(mock, OpReadReference, ReferenceSize)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if want := []byte{0x00, 0x98, 0x96, 0x80}; !bytes.Equal(payload, want) {
		t.Errorf("payload = % X, want % X", payload, want)
	}
	if len(mock.writes) != 1 || !bytes.Equal(mock.writes[0], []byte{0x81}) {
		t.Errorf("wrote % X, want the single address byte 81", mock.writes)
	}
}

// The device delivers replies as they drain from its UART, so a payload
// may arrive split across several reads.
func TestQueryFragmentedReply(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(0x00, 0x98)
	mock.queueReply(0x96)
	mock.queueReply(0x80, 0xAE)

	payload, err := Query(mock, OpReadReference, ReferenceSize)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if want := []byte{0x00, 0x98, 0x96, 0x80}; !bytes.Equal(payload, want) {
		t.Errorf("payload = % X, want % X", payload, want)
	}
}

func TestQueryChecksumMismatch(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(0x00, 0x98, 0x96, 0x80, 0xFF)

	_, err := Query(mock, OpReadReference|0x08, ReferenceSize)
	if err == nil {
		t.Fatal("expected checksum error")
	}

	var cerr *ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ChecksumError", err)
	}
	if cerr.Address != 0x89 || cerr.Want != 0xAE || cerr.Got != 0xFF {
		t.Errorf("ChecksumError = %+v, want {Address:0x89 Want:0xAE Got:0xFF}", cerr)
	}
}

func TestQueryShortReply(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(0x00, 0x98) // device stops mid-reply

	_, err := Query(mock, OpReadReference, ReferenceSize)
	if err == nil {
		t.Fatal("expected error on truncated reply")
	}
}

func TestQueryWriteError(t *testing.T) {
	mock := &mockTransport{writeErr: errors.New("port gone")}

	if _, err := Query(mock, OpReadStatus, StatusSize); err == nil {
		t.Fatal("expected write error to propagate")
	}
}

func TestCommandFrame(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(ACK)

	payload := []byte{0x00, 0x98, 0x96, 0x80}
	if err := Command(mock, OpWriteReference, payload); err != nil {
		t.Fatalf("Command: %v", err)
	}

	want := []byte{0x01, 0x00, 0x98, 0x96, 0x80, 0xAF}
	if len(mock.writes) != 1 || !bytes.Equal(mock.writes[0], want) {
		t.Errorf("frame = % X, want % X", mock.writes, want)
	}
}

// Writing all six registers as zero to channel A produces an address byte
// of 0x00, a zero payload and therefore a zero checksum; the exchange
// succeeds only on the single ACK byte.
func TestCommandAllZeroRegisters(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(ACK)

	if err := Command(mock, OpWriteRegisters, make([]byte, RegistersSize)); err != nil {
		t.Fatalf("Command: %v", err)
	}

	frame := mock.writes[0]
	if len(frame) != RegistersSize+2 {
		t.Fatalf("frame length = %d, want %d", len(frame), RegistersSize+2)
	}
	for i, b := range frame {
		if b != 0x00 {
			t.Errorf("frame[%d] = 0x%02X, want 0x00", i, b)
		}
	}
}

func TestCommandNACK(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(NACK)

	err := Command(mock, OpFlash, nil)
	if err == nil {
		t.Fatal("expected NACK error")
	}

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if serr.Status != NACK || serr.Address != OpFlash {
		t.Errorf("StatusError = %+v, want {Address:0x40 Status:0x15}", serr)
	}
}

func TestCommandUnexpectedStatus(t *testing.T) {
	mock := &mockTransport{}
	mock.queueReply(0x5A)

	err := Command(mock, OpWriteRefSelect, []byte{0x01})

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if serr.Status != 0x5A {
		t.Errorf("Status = 0x%02X, want 0x5A", serr.Status)
	}
}

func TestCommandNoStatusByte(t *testing.T) {
	mock := &mockTransport{} // no reply queued

	if err := Command(mock, OpFlash, nil); err == nil {
		t.Fatal("expected error when the device stays silent")
	}
}
