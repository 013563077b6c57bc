package main

import (
	"bytes"
	"testing"

	"github.com/herlein/govalon/pkg/registers"
)

// The regs output pairs every raw register word with its decoded fields.
func TestPrintBankDecodesFields(t *testing.T) {
	var bank registers.Bank
	bank.R0.SetNCount(31)
	bank.R0.SetFrac(312)
	bank.R1.SetMod(2)
	bank.R2.SetDivider(1)
	bank.R2.SetDoubleR(true)
	bank.R2.SetLowSpur(true)
	bank.R4.SetOutputPower(3)
	bank.R4.SetDividerSelect(1)
	bank.R5.SetLDPinMode(1)

	var buf bytes.Buffer
	printBank(&buf, bank)

	want := "R0: 0x000F89C0  ncount=31 frac=312\n" +
		"R1: 0x00000010  mod=2 phase=0 prescaler=4/5\n" +
		"R2: 0x62004000  divider=1 double_ref=on half_ref=off low_spur=on charge_pump=0 muxout=0\n" +
		"R3: 0x00000000  clock_divider=0 clock_div_mode=0 csr=off\n" +
		"R4: 0x00100018  output_power=3 rf_enable=off divider_select=1\n" +
		"R5: 0x00400000  ld_pin_mode=1\n"
	if buf.String() != want {
		t.Errorf("printBank =\n%swant\n%s", buf.String(), want)
	}
}
