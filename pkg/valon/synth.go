// Package valon drives Valon Technology 5007 dual-channel frequency
// synthesizers over a serial line. A Synth wraps an open transport and
// exposes typed operations per channel (frequency, RF level, reference
// options, VCO range, label, phase lock) and for the whole board
// (reference frequency, reference select, flash to nonvolatile memory).
//
// Every operation is a synchronous protocol exchange; partial register
// updates read all six registers, change only the named fields and write
// the whole block back, so reserved bits are never disturbed.
package valon

import (
	"encoding/binary"
	"fmt"

	"github.com/herlein/govalon/pkg/protocol"
	"github.com/herlein/govalon/pkg/registers"
)

// Synth is a handle to one 5007 board: two synthesizer channels behind a
// single serial connection. It issues one request at a time and is not
// safe for concurrent use.
type Synth struct {
	port    protocol.Transport
	spacing float64
}

// Option configures a Synth.
type Option func(*Synth)

// WithChannelSpacing sets the channel spacing in MHz that SetFrequency
// quantizes to. The default is DefaultChannelSpacing.
func WithChannelSpacing(mhz float64) Option {
	return func(s *Synth) {
		if mhz > 0 {
			s.spacing = mhz
		}
	}
}

// New wraps an open transport. The Synth uses the transport for its whole
// lifetime but never opens or closes it.
func New(port protocol.Transport, opts ...Option) *Synth {
	s := &Synth{port: port, spacing: DefaultChannelSpacing}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadRegisters fetches the channel's six configuration registers.
func (s *Synth) ReadRegisters(ch Channel) (registers.Bank, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadRegisters|byte(ch), protocol.RegistersSize)
	if err != nil {
		return registers.Bank{}, fmt.Errorf("failed to read registers: %w", err)
	}
	bank, err := registers.DecodeBank(payload)
	if err != nil {
		return registers.Bank{}, fmt.Errorf("failed to decode registers: %w", err)
	}
	return bank, nil
}

// WriteRegisters programs all six configuration registers at once.
func (s *Synth) WriteRegisters(ch Channel, b registers.Bank) error {
	if err := protocol.Command(s.port, protocol.OpWriteRegisters|byte(ch), b.Encode()); err != nil {
		return fmt.Errorf("failed to write registers: %w", err)
	}
	return nil
}

// GetFrequency returns the channel's output frequency in MHz, derived from
// the fractional-N registers and the current reference settings.
func (s *Synth) GetFrequency(ch Channel) (float64, error) {
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return 0, err
	}
	epdf, err := s.epdfFrom(bank)
	if err != nil {
		return 0, err
	}
	return outputFrequency(varsFromBank(bank), epdf), nil
}

// SetFrequency programs the channel to the target frequency in MHz,
// quantized to the configured channel spacing. The VCO range, reference
// and reference options are read first since they determine the divider
// and fractional-N values; the update itself is a read-modify-write of all
// six registers.
func (s *Synth) SetFrequency(ch Channel, mhz float64) error {
	vco, err := s.GetVCORange(ch)
	if err != nil {
		return err
	}
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return err
	}
	epdf, err := s.epdfFrom(bank)
	if err != nil {
		return err
	}

	vars := solveFrequency(mhz, vco.Min, epdf, s.spacing)
	bank.R0.SetNCount(vars.ncount)
	bank.R0.SetFrac(vars.frac)
	bank.R1.SetMod(vars.mod)
	bank.R4.SetDividerSelect(dbfToCode(vars.dbf))

	return s.WriteRegisters(ch, bank)
}

// GetReference returns the reference frequency in Hz.
func (s *Synth) GetReference() (uint32, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadReference, protocol.ReferenceSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read reference: %w", err)
	}
	return binary.BigEndian.Uint32(payload), nil
}

// SetReference sets the reference frequency in Hz that all frequency
// calculations are based on. This updates the value the device stores and
// the driver computes with; it does not necessarily reprogram the physical
// reference oscillator.
func (s *Synth) SetReference(hz uint32) error {
	payload := make([]byte, protocol.ReferenceSize)
	binary.BigEndian.PutUint32(payload, hz)
	if err := protocol.Command(s.port, protocol.OpWriteReference, payload); err != nil {
		return fmt.Errorf("failed to write reference: %w", err)
	}
	return nil
}

// GetRFLevel returns the channel's output power in dBm: -4, -1, 2 or 5.
func (s *Synth) GetRFLevel(ch Channel) (int, error) {
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return 0, err
	}
	return rfLevels[bank.R4.OutputPower()], nil
}

// SetRFLevel sets the channel's output power in dBm. Only the four
// hardware levels are accepted; anything else fails with
// ErrInvalidRFLevel before touching the device.
func (s *Synth) SetRFLevel(ch Channel, dBm int) error {
	code, err := rfLevelCode(dBm)
	if err != nil {
		return err
	}
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return err
	}
	bank.R4.SetOutputPower(code)
	return s.WriteRegisters(ch, bank)
}

// GetOptions returns the channel's reference path options.
func (s *Synth) GetOptions(ch Channel) (Options, error) {
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return Options{}, err
	}
	return optionsFromBank(bank), nil
}

// SetOptions programs the reference path options, leaving the rest of
// register 2 untouched.
func (s *Synth) SetOptions(ch Channel, o Options) error {
	bank, err := s.ReadRegisters(ch)
	if err != nil {
		return err
	}
	bank.R2.SetDoubleR(o.DoubleRef)
	bank.R2.SetHalfR(o.HalfRef)
	bank.R2.SetDivider(o.Divider)
	bank.R2.SetLowSpur(o.LowSpur)
	return s.WriteRegisters(ch, bank)
}

// GetLabel returns the 16-byte channel label exactly as stored, including
// any padding bytes.
func (s *Synth) GetLabel(ch Channel) (string, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadLabel|byte(ch), protocol.LabelSize)
	if err != nil {
		return "", fmt.Errorf("failed to read label: %w", err)
	}
	return string(payload), nil
}

// SetLabel stores a new channel label. The wire format is exactly 16 raw
// bytes with no terminator: longer labels are truncated, shorter ones
// padded with zero bytes.
func (s *Synth) SetLabel(ch Channel, label string) error {
	payload := make([]byte, protocol.LabelSize)
	copy(payload, label)
	if err := protocol.Command(s.port, protocol.OpWriteLabel|byte(ch), payload); err != nil {
		return fmt.Errorf("failed to write label: %w", err)
	}
	return nil
}

// GetVCORange returns the channel's VCO frequency bounds in MHz.
func (s *Synth) GetVCORange(ch Channel) (VCORange, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadVCORange|byte(ch), protocol.VCORangeSize)
	if err != nil {
		return VCORange{}, fmt.Errorf("failed to read VCO range: %w", err)
	}
	return VCORange{
		Min: binary.BigEndian.Uint16(payload[0:2]),
		Max: binary.BigEndian.Uint16(payload[2:4]),
	}, nil
}

// SetVCORange sets the VCO bounds that the divider search in SetFrequency
// works against.
func (s *Synth) SetVCORange(ch Channel, r VCORange) error {
	payload := make([]byte, protocol.VCORangeSize)
	binary.BigEndian.PutUint16(payload[0:2], r.Min)
	binary.BigEndian.PutUint16(payload[2:4], r.Max)
	if err := protocol.Command(s.port, protocol.OpWriteVCORange|byte(ch), payload); err != nil {
		return fmt.Errorf("failed to write VCO range: %w", err)
	}
	return nil
}

// GetPhaseLock reports whether the channel's PLL is locked.
func (s *Synth) GetPhaseLock(ch Channel) (bool, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadStatus|byte(ch), protocol.StatusSize)
	if err != nil {
		return false, fmt.Errorf("failed to read lock status: %w", err)
	}
	return payload[0]&ch.lockMask() != 0, nil
}

// GetRefSelect reports the reference source for the whole board: true for
// the external input, false for the internal oscillator.
func (s *Synth) GetRefSelect() (bool, error) {
	payload, err := protocol.Query(s.port, protocol.OpReadStatus, protocol.StatusSize)
	if err != nil {
		return false, fmt.Errorf("failed to read reference select: %w", err)
	}
	return payload[0]&0x01 != 0, nil
}

// SetRefSelect switches the board between the external reference input
// (true) and the internal oscillator (false).
func (s *Synth) SetRefSelect(external bool) error {
	payload := []byte{0x00}
	if external {
		payload[0] = 0x01
	}
	if err := protocol.Command(s.port, protocol.OpWriteRefSelect, payload); err != nil {
		return fmt.Errorf("failed to write reference select: %w", err)
	}
	return nil
}

// Flash persists the current settings of both channels to nonvolatile
// memory so they survive a power cycle.
func (s *Synth) Flash() error {
	if err := protocol.Command(s.port, protocol.OpFlash, nil); err != nil {
		return fmt.Errorf("failed to flash settings: %w", err)
	}
	return nil
}

// epdfFrom computes the effective phase detector frequency for a channel
// whose registers are already in hand; only the reference needs a read.
// A reference that reads back zero fails with ErrZeroReference.
func (s *Synth) epdfFrom(bank registers.Bank) (float64, error) {
	ref, err := s.GetReference()
	if err != nil {
		return 0, err
	}
	epdf := effectivePDF(ref, optionsFromBank(bank))
	if epdf <= 0 {
		return 0, ErrZeroReference
	}
	return epdf, nil
}

func varsFromBank(b registers.Bank) frequencyVars {
	return frequencyVars{
		ncount: b.R0.NCount(),
		frac:   b.R0.Frac(),
		mod:    b.R1.Mod(),
		dbf:    codeToDBF(b.R4.DividerSelect()),
	}
}
