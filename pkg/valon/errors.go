package valon

import "errors"

var (
	// ErrInvalidRFLevel is returned when a requested output power is not
	// one of the four levels the hardware supports.
	ErrInvalidRFLevel = errors.New("rf level must be -4, -1, 2 or 5 dBm")

	// ErrZeroReference is returned when the device's stored reference
	// frequency reads back as zero, leaving nothing to base frequency
	// calculations on.
	ErrZeroReference = errors.New("device reference frequency is zero")
)
