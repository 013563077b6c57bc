package valon

import (
	"fmt"

	"github.com/herlein/govalon/pkg/registers"
)

// Options are the reference path settings of one channel. DoubleRef and
// HalfRef may both be set; Divider is the 10-bit reference divider (values
// above 1 divide the phase detector frequency). LowSpur selects low spur
// mode over low noise mode.
type Options struct {
	DoubleRef bool   `json:"double_ref" yaml:"double_ref"`
	HalfRef   bool   `json:"half_ref" yaml:"half_ref"`
	Divider   uint32 `json:"divider" yaml:"divider"`
	LowSpur   bool   `json:"low_spur" yaml:"low_spur"`
}

// VCORange bounds the channel's voltage controlled oscillator in MHz. The
// divider search in SetFrequency keeps the VCO above Min.
type VCORange struct {
	Min uint16 `json:"min_mhz" yaml:"min_mhz"`
	Max uint16 `json:"max_mhz" yaml:"max_mhz"`
}

// String formats the range the way the data sheet writes it.
func (r VCORange) String() string {
	return fmt.Sprintf("%d-%d MHz", r.Min, r.Max)
}

func optionsFromBank(b registers.Bank) Options {
	return Options{
		DoubleRef: b.R2.DoubleR(),
		HalfRef:   b.R2.HalfR(),
		Divider:   b.R2.Divider(),
		LowSpur:   b.R2.LowSpur(),
	}
}
