package protocol

// Command opcodes. Reads have bit 7 set; the matching write is the same
// opcode with bit 7 cleared. Per-channel opcodes are OR'd with a channel
// selector (0x00 or 0x08) to form the wire address byte.
const (
	OpWriteRegisters = 0x00 // six 32-bit register words
	OpWriteReference = 0x01 // reference frequency in Hz
	OpWriteLabel     = 0x02 // 16 raw label bytes
	OpWriteVCORange  = 0x03 // VCO min and max in MHz
	OpWriteRefSelect = 0x06 // reference select, bit 0 only
	OpFlash          = 0x40 // persist settings to nonvolatile memory

	OpReadRegisters = 0x80
	OpReadReference = 0x81
	OpReadLabel     = 0x82
	OpReadVCORange  = 0x83
	OpReadStatus    = 0x86 // phase lock / reference select status byte
)

// Reply payload sizes in bytes, excluding the trailing checksum.
const (
	RegistersSize = 24
	ReferenceSize = 4
	LabelSize     = 16
	VCORangeSize  = 4
	StatusSize    = 1
)

// Single-byte command acknowledgments.
const (
	ACK  = 0x06
	NACK = 0x15
)
