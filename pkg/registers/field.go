package registers

// Field describes a contiguous run of bits inside a 32-bit register word.
// Shift is the bit offset of the least significant bit, Width the number of
// bits. Inserting a value wider than the field truncates it to the low
// Width bits, matching what the hardware does with oversized writes.
type Field struct {
	Shift uint
	Width uint
}

// Mask returns the field's bits set within an otherwise zero word.
func (f Field) Mask() uint32 {
	return (uint32(1)<<f.Width - 1) << f.Shift
}

// Get extracts the field from word, shifted down to bit 0 and zero-extended.
func (f Field) Get(word uint32) uint32 {
	return (word >> f.Shift) & (uint32(1)<<f.Width - 1)
}

// Insert returns word with the field replaced by the low Width bits of
// value. Bits outside the field are left untouched.
func (f Field) Insert(word, value uint32) uint32 {
	return (word &^ f.Mask()) | (value << f.Shift & f.Mask())
}

// IsSet reports whether any bit of the field is set in word.
func (f Field) IsSet(word uint32) bool {
	return word&f.Mask() != 0
}

func boolBit(on bool) uint32 {
	if on {
		return 1
	}
	return 0
}
