// Package registers models the six 32-bit configuration registers of the
// Valon 5007 synthesizer and the bit fields within them. Register words
// travel over the wire big-endian as one 24-byte block per channel; the
// Bank type packs and unpacks that block.
package registers

import (
	"encoding/binary"
	"fmt"
)

// Every register keeps its own index in the low control bits.
var regControl = Field{Shift: 0, Width: 3}

// Register 0: integer and fractional divide values.
var (
	reg0Frac   = Field{Shift: 3, Width: 12}
	reg0NCount = Field{Shift: 15, Width: 16}
)

// Register 1: modulus, phase and prescaler.
var (
	reg1Mod       = Field{Shift: 3, Width: 12}
	reg1Phase     = Field{Shift: 15, Width: 12}
	reg1Prescaler = Field{Shift: 27, Width: 1}
)

// Register 2: reference path, charge pump and mux control.
var (
	reg2CounterReset = Field{Shift: 3, Width: 1}
	reg2CPThreeState = Field{Shift: 4, Width: 1}
	reg2PowerDown    = Field{Shift: 5, Width: 1}
	reg2PDPolarity   = Field{Shift: 6, Width: 1}
	reg2LDP          = Field{Shift: 7, Width: 1}
	reg2LDF          = Field{Shift: 8, Width: 1}
	reg2ChargePump   = Field{Shift: 9, Width: 4}
	reg2DoubleBuffer = Field{Shift: 13, Width: 1}
	reg2Divider      = Field{Shift: 14, Width: 10}
	reg2HalfR        = Field{Shift: 24, Width: 1}
	reg2DoubleR      = Field{Shift: 25, Width: 1}
	reg2Muxout       = Field{Shift: 26, Width: 3}
	reg2LowSpur      = Field{Shift: 29, Width: 2}
)

// Register 3: clock divider.
var (
	reg3ClockDivider = Field{Shift: 3, Width: 12}
	reg3ClockDivMode = Field{Shift: 15, Width: 2}
	reg3CSR          = Field{Shift: 18, Width: 1}
)

// Register 4: output stage.
var (
	reg4OutputPower        = Field{Shift: 3, Width: 2}
	reg4RFEnable           = Field{Shift: 5, Width: 1}
	reg4AuxPower           = Field{Shift: 6, Width: 2}
	reg4AuxEnable          = Field{Shift: 8, Width: 1}
	reg4AuxSelect          = Field{Shift: 9, Width: 1}
	reg4MTLD               = Field{Shift: 10, Width: 1}
	reg4VCOPowerDown       = Field{Shift: 11, Width: 1}
	reg4BandSelectClockDiv = Field{Shift: 12, Width: 8}
	reg4DividerSelect      = Field{Shift: 20, Width: 3}
	reg4FeedbackSelect     = Field{Shift: 23, Width: 1}
)

// Register 5: lock detect pin.
var reg5LDPinMode = Field{Shift: 22, Width: 2}

// Register0 holds the integer (ncount) and fractional (frac) divide values.
type Register0 uint32

func (r Register0) Control() uint32 { return regControl.Get(uint32(r)) }
func (r Register0) Frac() uint32    { return reg0Frac.Get(uint32(r)) }
func (r Register0) NCount() uint32  { return reg0NCount.Get(uint32(r)) }

func (r *Register0) SetFrac(v uint32)   { *r = Register0(reg0Frac.Insert(uint32(*r), v)) }
func (r *Register0) SetNCount(v uint32) { *r = Register0(reg0NCount.Insert(uint32(*r), v)) }

// Register1 holds the fractional modulus, phase offset and prescaler mode.
type Register1 uint32

func (r Register1) Control() uint32 { return regControl.Get(uint32(r)) }
func (r Register1) Mod() uint32     { return reg1Mod.Get(uint32(r)) }
func (r Register1) Phase() uint32   { return reg1Phase.Get(uint32(r)) }

// Prescaler reports the dual-modulus prescaler mode: false is 4/5, true 8/9.
func (r Register1) Prescaler() bool { return reg1Prescaler.IsSet(uint32(r)) }

func (r *Register1) SetMod(v uint32)   { *r = Register1(reg1Mod.Insert(uint32(*r), v)) }
func (r *Register1) SetPhase(v uint32) { *r = Register1(reg1Phase.Insert(uint32(*r), v)) }
func (r *Register1) SetPrescaler(on bool) {
	*r = Register1(reg1Prescaler.Insert(uint32(*r), boolBit(on)))
}

// Register2 holds the reference path options (R divider, doubler, halver,
// low spur mode), charge pump and muxout control.
type Register2 uint32

func (r Register2) Control() uint32    { return regControl.Get(uint32(r)) }
func (r Register2) CounterReset() bool { return reg2CounterReset.IsSet(uint32(r)) }
func (r Register2) CPThreeState() bool { return reg2CPThreeState.IsSet(uint32(r)) }
func (r Register2) PowerDown() bool    { return reg2PowerDown.IsSet(uint32(r)) }
func (r Register2) PDPolarity() bool   { return reg2PDPolarity.IsSet(uint32(r)) }
func (r Register2) LDP() bool          { return reg2LDP.IsSet(uint32(r)) }
func (r Register2) LDF() bool          { return reg2LDF.IsSet(uint32(r)) }
func (r Register2) ChargePump() uint32 { return reg2ChargePump.Get(uint32(r)) }
func (r Register2) DoubleBuffer() bool { return reg2DoubleBuffer.IsSet(uint32(r)) }

// Divider returns the 10-bit reference divider (the "r" option).
func (r Register2) Divider() uint32 { return reg2Divider.Get(uint32(r)) }
func (r Register2) HalfR() bool     { return reg2HalfR.IsSet(uint32(r)) }
func (r Register2) DoubleR() bool   { return reg2DoubleR.IsSet(uint32(r)) }
func (r Register2) Muxout() uint32  { return reg2Muxout.Get(uint32(r)) }

// LowSpur reports whether low spur mode is enabled (either mode bit set).
func (r Register2) LowSpur() bool { return reg2LowSpur.IsSet(uint32(r)) }

func (r *Register2) SetCounterReset(on bool) {
	*r = Register2(reg2CounterReset.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetCPThreeState(on bool) {
	*r = Register2(reg2CPThreeState.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetPowerDown(on bool) {
	*r = Register2(reg2PowerDown.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetPDPolarity(on bool) {
	*r = Register2(reg2PDPolarity.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetLDP(on bool) { *r = Register2(reg2LDP.Insert(uint32(*r), boolBit(on))) }
func (r *Register2) SetLDF(on bool) { *r = Register2(reg2LDF.Insert(uint32(*r), boolBit(on))) }
func (r *Register2) SetChargePump(v uint32) {
	*r = Register2(reg2ChargePump.Insert(uint32(*r), v))
}
func (r *Register2) SetDoubleBuffer(on bool) {
	*r = Register2(reg2DoubleBuffer.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetDivider(v uint32) { *r = Register2(reg2Divider.Insert(uint32(*r), v)) }
func (r *Register2) SetHalfR(on bool)    { *r = Register2(reg2HalfR.Insert(uint32(*r), boolBit(on))) }
func (r *Register2) SetDoubleR(on bool) {
	*r = Register2(reg2DoubleR.Insert(uint32(*r), boolBit(on)))
}
func (r *Register2) SetMuxout(v uint32) { *r = Register2(reg2Muxout.Insert(uint32(*r), v)) }

// SetLowSpur enables or disables low spur mode. The hardware wants both
// mode bits set for low spur and both clear for low noise, so true writes
// the pattern 0b11 and false writes 0b00.
func (r *Register2) SetLowSpur(on bool) {
	v := uint32(0)
	if on {
		v = 0x3
	}
	*r = Register2(reg2LowSpur.Insert(uint32(*r), v))
}

// Register3 holds the clock divider and its mode.
type Register3 uint32

func (r Register3) Control() uint32      { return regControl.Get(uint32(r)) }
func (r Register3) ClockDivider() uint32 { return reg3ClockDivider.Get(uint32(r)) }
func (r Register3) ClockDivMode() uint32 { return reg3ClockDivMode.Get(uint32(r)) }
func (r Register3) CSR() bool            { return reg3CSR.IsSet(uint32(r)) }

func (r *Register3) SetClockDivider(v uint32) {
	*r = Register3(reg3ClockDivider.Insert(uint32(*r), v))
}
func (r *Register3) SetClockDivMode(v uint32) {
	*r = Register3(reg3ClockDivMode.Insert(uint32(*r), v))
}
func (r *Register3) SetCSR(on bool) { *r = Register3(reg3CSR.Insert(uint32(*r), boolBit(on))) }

// Register4 holds the output stage: RF and aux output power and enables,
// the band select clock and the output divider select.
type Register4 uint32

func (r Register4) Control() uint32     { return regControl.Get(uint32(r)) }
func (r Register4) OutputPower() uint32 { return reg4OutputPower.Get(uint32(r)) }
func (r Register4) RFEnable() bool      { return reg4RFEnable.IsSet(uint32(r)) }
func (r Register4) AuxPower() uint32    { return reg4AuxPower.Get(uint32(r)) }
func (r Register4) AuxEnable() bool     { return reg4AuxEnable.IsSet(uint32(r)) }
func (r Register4) AuxSelect() bool     { return reg4AuxSelect.IsSet(uint32(r)) }
func (r Register4) MTLD() bool          { return reg4MTLD.IsSet(uint32(r)) }
func (r Register4) VCOPowerDown() bool  { return reg4VCOPowerDown.IsSet(uint32(r)) }
func (r Register4) BandSelectClockDiv() uint32 {
	return reg4BandSelectClockDiv.Get(uint32(r))
}

// DividerSelect returns the 3-bit output divider code (0 means divide by 1,
// 1 by 2, 2 by 4, 3 by 8, 4 by 16).
func (r Register4) DividerSelect() uint32 { return reg4DividerSelect.Get(uint32(r)) }
func (r Register4) FeedbackSelect() bool  { return reg4FeedbackSelect.IsSet(uint32(r)) }

func (r *Register4) SetOutputPower(v uint32) {
	*r = Register4(reg4OutputPower.Insert(uint32(*r), v))
}
func (r *Register4) SetRFEnable(on bool) {
	*r = Register4(reg4RFEnable.Insert(uint32(*r), boolBit(on)))
}
func (r *Register4) SetAuxPower(v uint32) { *r = Register4(reg4AuxPower.Insert(uint32(*r), v)) }
func (r *Register4) SetAuxEnable(on bool) {
	*r = Register4(reg4AuxEnable.Insert(uint32(*r), boolBit(on)))
}
func (r *Register4) SetAuxSelect(on bool) {
	*r = Register4(reg4AuxSelect.Insert(uint32(*r), boolBit(on)))
}
func (r *Register4) SetMTLD(on bool) { *r = Register4(reg4MTLD.Insert(uint32(*r), boolBit(on))) }
func (r *Register4) SetVCOPowerDown(on bool) {
	*r = Register4(reg4VCOPowerDown.Insert(uint32(*r), boolBit(on)))
}
func (r *Register4) SetBandSelectClockDiv(v uint32) {
	*r = Register4(reg4BandSelectClockDiv.Insert(uint32(*r), v))
}
func (r *Register4) SetDividerSelect(v uint32) {
	*r = Register4(reg4DividerSelect.Insert(uint32(*r), v))
}
func (r *Register4) SetFeedbackSelect(on bool) {
	*r = Register4(reg4FeedbackSelect.Insert(uint32(*r), boolBit(on)))
}

// Register5 holds the lock detect pin mode.
type Register5 uint32

func (r Register5) Control() uint32    { return regControl.Get(uint32(r)) }
func (r Register5) LDPinMode() uint32  { return reg5LDPinMode.Get(uint32(r)) }
func (r *Register5) SetLDPinMode(v uint32) {
	*r = Register5(reg5LDPinMode.Insert(uint32(*r), v))
}

// BankSize is the encoded size of a register bank on the wire.
const BankSize = 24

// Bank is the full six-register configuration block for one synthesizer
// channel, in wire order. Partial updates go through a Bank so that
// reserved bits read from the device are written back unchanged.
type Bank struct {
	R0 Register0
	R1 Register1
	R2 Register2
	R3 Register3
	R4 Register4
	R5 Register5
}

// DecodeBank unpacks a 24-byte big-endian register block.
func DecodeBank(p []byte) (Bank, error) {
	if len(p) != BankSize {
		return Bank{}, fmt.Errorf("register block must be %d bytes, got %d", BankSize, len(p))
	}
	return Bank{
		R0: Register0(binary.BigEndian.Uint32(p[0:4])),
		R1: Register1(binary.BigEndian.Uint32(p[4:8])),
		R2: Register2(binary.BigEndian.Uint32(p[8:12])),
		R3: Register3(binary.BigEndian.Uint32(p[12:16])),
		R4: Register4(binary.BigEndian.Uint32(p[16:20])),
		R5: Register5(binary.BigEndian.Uint32(p[20:24])),
	}, nil
}

// Encode packs the bank into its 24-byte big-endian wire form.
func (b Bank) Encode() []byte {
	p := make([]byte, BankSize)
	for i, w := range b.Words() {
		binary.BigEndian.PutUint32(p[i*4:i*4+4], w)
	}
	return p
}

// Words returns the six register words in wire order.
func (b Bank) Words() [6]uint32 {
	return [6]uint32{
		uint32(b.R0),
		uint32(b.R1),
		uint32(b.R2),
		uint32(b.R3),
		uint32(b.R4),
		uint32(b.R5),
	}
}
