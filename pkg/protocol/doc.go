// Package protocol implements the Valon 5007 serial command protocol:
// framing, checksums and the acknowledgment handshake.
//
// The synthesizer speaks a binary request/response protocol over a 9600
// 8N1 serial line. Every exchange is initiated by the host and addressed
// by a single byte: a command opcode, OR'd with a channel selector bit for
// the per-channel commands.
//
// # Queries
//
// A query is the address byte alone. The device answers with a fixed-size
// payload determined by the opcode, followed by one checksum byte, the sum
// of the payload bytes modulo 256:
//
//	host:   [addr]
//	device: [payload ...] [checksum]
//
// # Commands
//
// A command carries its payload inline, with a trailing checksum computed
// over the address byte and the payload together. The device answers with
// a single status byte: ACK (0x06) on success, NACK (0x15) on rejection.
//
//	host:   [addr] [payload ...] [checksum]
//	device: [status]
//
// Multi-byte integers are big-endian on the wire. Checksum failures and
// non-ACK statuses are never retried here; they surface as typed errors
// the caller can inspect with errors.As.
package protocol
