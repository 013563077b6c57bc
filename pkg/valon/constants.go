package valon

import (
	"fmt"
	"strings"
)

// Channel selects one of the two synthesizers behind the serial line. Its
// value is OR'd into the protocol address byte.
type Channel byte

const (
	ChannelA Channel = 0x00
	ChannelB Channel = 0x08
)

// Channels lists both synthesizer channels in display order.
var Channels = [2]Channel{ChannelA, ChannelB}

// String returns the channel letter.
func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	}
	return fmt.Sprintf("Channel(0x%02X)", byte(c))
}

// ParseChannel accepts "a"/"A"/"0" for channel A and "b"/"B"/"1" for
// channel B.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "a", "0":
		return ChannelA, nil
	case "b", "1":
		return ChannelB, nil
	}
	return 0, fmt.Errorf("unknown channel %q (want a or b)", s)
}

// lockMask is the channel's phase lock bit within the status byte.
func (c Channel) lockMask() byte {
	if c == ChannelB {
		return 0x10
	}
	return 0x20
}

// DefaultChannelSpacing is the channel spacing in MHz used by SetFrequency
// when the Synth is built without WithChannelSpacing.
const DefaultChannelSpacing = 10.0

// RF output power levels in dBm, indexed by their 2-bit register encoding.
var rfLevels = [4]int{-4, -1, 2, 5}

// rfLevelCode maps a requested power in dBm to its register encoding.
func rfLevelCode(dBm int) (uint32, error) {
	for code, level := range rfLevels {
		if level == dBm {
			return uint32(code), nil
		}
	}
	return 0, fmt.Errorf("%d dBm: %w", dBm, ErrInvalidRFLevel)
}
