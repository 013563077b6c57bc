package protocol

import "fmt"

// ChecksumError reports a query reply whose checksum byte does not match
// its payload. The payload cannot be trusted and the operation fails; no
// retry is attempted.
type ChecksumError struct {
	Address byte // address byte of the query
	Want    byte // checksum computed over the received payload
	Got     byte // checksum byte received from the device
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch on reply to 0x%02X: computed 0x%02X, received 0x%02X",
		e.Address, e.Want, e.Got)
}

// StatusError reports a command that did not come back with an ACK. Status
// holds the byte the device returned: NACK for a rejected command; any
// other value is a protocol violation.
type StatusError struct {
	Address byte
	Status  byte
}

func (e *StatusError) Error() string {
	if e.Status == NACK {
		return fmt.Sprintf("command 0x%02X rejected (NACK)", e.Address)
	}
	return fmt.Sprintf("command 0x%02X: unexpected status byte 0x%02X", e.Address, e.Status)
}
