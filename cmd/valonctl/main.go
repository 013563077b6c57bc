// valonctl: Query and program a Valon 5007 frequency synthesizer
//
// Each invocation runs one command against the device: reading or setting
// a channel's frequency, output level, label, VCO range or tuning options,
// the shared reference, or the flash. Commands that take a channel address
// it with -c; with no value argument they read, with one they write.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/herlein/govalon/pkg/registers"
	"github.com/herlein/govalon/pkg/transport"
	"github.com/herlein/govalon/pkg/valon"
)

var (
	serialPort = flag.String("p", "", "Serial port (e.g. /dev/ttyUSB0)")
	tcpAddr    = flag.String("tcp", "", "TCP bridge address (host:port), used instead of -p")
	timeout    = flag.Duration("t", 0, "Read timeout (0 = library default)")
	channel    = flag.String("c", "a", "Channel to address: a or b")
	spacing    = flag.Float64("s", valon.DefaultChannelSpacing, "Channel spacing in MHz for tuning")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  status                 Show both channels and the reference\n")
		fmt.Fprintf(os.Stderr, "  freq [MHz]             Get or set the channel output frequency\n")
		fmt.Fprintf(os.Stderr, "  level [dBm]            Get or set the RF output level (-4, -1, 2, 5)\n")
		fmt.Fprintf(os.Stderr, "  ref [Hz]               Get or set the reference frequency\n")
		fmt.Fprintf(os.Stderr, "  refselect [internal|external]  Get or set the reference source\n")
		fmt.Fprintf(os.Stderr, "  label [text]           Get or set the channel label\n")
		fmt.Fprintf(os.Stderr, "  vco [min max]          Get or set the VCO range in MHz\n")
		fmt.Fprintf(os.Stderr, "  options [key=value ...]  Get or set tuning options\n")
		fmt.Fprintf(os.Stderr, "  lock                   Report channel phase lock\n")
		fmt.Fprintf(os.Stderr, "  regs                   Dump the channel's registers, raw and decoded\n")
		fmt.Fprintf(os.Stderr, "  flash                  Persist current settings to flash\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -p /dev/ttyUSB0 status\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -p /dev/ttyUSB0 -c b freq 2400.5\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tcp 10.0.0.5:4001 options double_ref=on divider=2\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	ch, err := valon.ParseChannel(*channel)
	if err != nil {
		return err
	}

	port, err := openTransport()
	if err != nil {
		return err
	}
	defer port.Close()

	synth := valon.New(port, valon.WithChannelSpacing(*spacing))

	switch command {
	case "status":
		return showStatus(synth)
	case "freq":
		return doFreq(synth, ch, args)
	case "level":
		return doLevel(synth, ch, args)
	case "ref":
		return doRef(synth, args)
	case "refselect":
		return doRefSelect(synth, args)
	case "label":
		return doLabel(synth, ch, args)
	case "vco":
		return doVCO(synth, ch, args)
	case "options":
		return doOptions(synth, ch, args)
	case "lock":
		return doLock(synth, ch)
	case "regs":
		return doRegs(synth, ch)
	case "flash":
		return doFlash(synth)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func openTransport() (io.ReadWriteCloser, error) {
	if *tcpAddr != "" {
		return transport.DialTCP(*tcpAddr, *timeout)
	}
	if *serialPort == "" {
		return nil, fmt.Errorf("no port given: use -p <serial port> or -tcp <addr> (try lsvalon)")
	}
	return transport.OpenSerial(*serialPort, *timeout)
}

func showStatus(synth *valon.Synth) error {
	referenceHz, err := synth.GetReference()
	if err != nil {
		return err
	}
	external, err := synth.GetRefSelect()
	if err != nil {
		return err
	}
	source := "internal"
	if external {
		source = "external"
	}
	fmt.Printf("Reference: %.6f MHz (%s)\n", float64(referenceHz)/1e6, source)

	for _, ch := range valon.Channels {
		label, err := synth.GetLabel(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		mhz, err := synth.GetFrequency(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		level, err := synth.GetRFLevel(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		locked, err := synth.GetPhaseLock(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		lock := "unlocked"
		if locked {
			lock = "locked"
		}
		fmt.Printf("Channel %s: %11.6f MHz  %+d dBm  %-8s  %q\n",
			ch, mhz, level, lock, strings.TrimRight(label, "\x00 "))
	}
	return nil
}

func doFreq(synth *valon.Synth, ch valon.Channel, args []string) error {
	if len(args) == 0 {
		mhz, err := synth.GetFrequency(ch)
		if err != nil {
			return err
		}
		fmt.Printf("%.6f MHz\n", mhz)
		return nil
	}

	mhz, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad frequency %q: %w", args[0], err)
	}
	if err := synth.SetFrequency(ch, mhz); err != nil {
		return err
	}
	if *verbose {
		actual, err := synth.GetFrequency(ch)
		if err != nil {
			return err
		}
		fmt.Printf("Channel %s tuned to %.6f MHz\n", ch, actual)
	}
	return nil
}

func doLevel(synth *valon.Synth, ch valon.Channel, args []string) error {
	if len(args) == 0 {
		level, err := synth.GetRFLevel(ch)
		if err != nil {
			return err
		}
		fmt.Printf("%+d dBm\n", level)
		return nil
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad level %q: %w", args[0], err)
	}
	return synth.SetRFLevel(ch, level)
}

func doRef(synth *valon.Synth, args []string) error {
	if len(args) == 0 {
		referenceHz, err := synth.GetReference()
		if err != nil {
			return err
		}
		fmt.Printf("%d Hz (%.6f MHz)\n", referenceHz, float64(referenceHz)/1e6)
		return nil
	}

	hz, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("bad reference %q: %w", args[0], err)
	}
	return synth.SetReference(uint32(hz))
}

func doRefSelect(synth *valon.Synth, args []string) error {
	if len(args) == 0 {
		external, err := synth.GetRefSelect()
		if err != nil {
			return err
		}
		if external {
			fmt.Println("external")
		} else {
			fmt.Println("internal")
		}
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "internal":
		return synth.SetRefSelect(false)
	case "external":
		return synth.SetRefSelect(true)
	}
	return fmt.Errorf("reference source must be internal or external, got %q", args[0])
}

func doLabel(synth *valon.Synth, ch valon.Channel, args []string) error {
	if len(args) == 0 {
		label, err := synth.GetLabel(ch)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimRight(label, "\x00 "))
		return nil
	}
	return synth.SetLabel(ch, strings.Join(args, " "))
}

func doVCO(synth *valon.Synth, ch valon.Channel, args []string) error {
	if len(args) == 0 {
		vcoRange, err := synth.GetVCORange(ch)
		if err != nil {
			return err
		}
		fmt.Println(vcoRange)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("vco takes two arguments: min and max in MHz")
	}

	min, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return fmt.Errorf("bad minimum %q: %w", args[0], err)
	}
	max, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return fmt.Errorf("bad maximum %q: %w", args[1], err)
	}
	return synth.SetVCORange(ch, valon.VCORange{Min: uint16(min), Max: uint16(max)})
}

func doOptions(synth *valon.Synth, ch valon.Channel, args []string) error {
	options, err := synth.GetOptions(ch)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("double_ref=%s\n", onOff(options.DoubleRef))
		fmt.Printf("half_ref=%s\n", onOff(options.HalfRef))
		fmt.Printf("divider=%d\n", options.Divider)
		fmt.Printf("low_spur=%s\n", onOff(options.LowSpur))
		return nil
	}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("options take key=value pairs, got %q", arg)
		}
		switch key {
		case "double_ref":
			options.DoubleRef, err = parseOnOff(value)
		case "half_ref":
			options.HalfRef, err = parseOnOff(value)
		case "divider":
			var divider uint64
			divider, err = strconv.ParseUint(value, 10, 10)
			options.Divider = uint32(divider)
		case "low_spur":
			options.LowSpur, err = parseOnOff(value)
		default:
			return fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return fmt.Errorf("bad value for %s: %w", key, err)
		}
	}
	return synth.SetOptions(ch, options)
}

func doLock(synth *valon.Synth, ch valon.Channel) error {
	locked, err := synth.GetPhaseLock(ch)
	if err != nil {
		return err
	}
	if locked {
		fmt.Printf("Channel %s: locked\n", ch)
	} else {
		fmt.Printf("Channel %s: unlocked\n", ch)
	}
	return nil
}

func doRegs(synth *valon.Synth, ch valon.Channel) error {
	bank, err := synth.ReadRegisters(ch)
	if err != nil {
		return err
	}
	printBank(os.Stdout, bank)
	return nil
}

// printBank renders each register word as raw hex alongside its decoded
// fields, one line per register.
func printBank(w io.Writer, bank registers.Bank) {
	prescaler := "4/5"
	if bank.R1.Prescaler() {
		prescaler = "8/9"
	}
	decoded := [6]string{
		fmt.Sprintf("ncount=%d frac=%d", bank.R0.NCount(), bank.R0.Frac()),
		fmt.Sprintf("mod=%d phase=%d prescaler=%s", bank.R1.Mod(), bank.R1.Phase(), prescaler),
		fmt.Sprintf("divider=%d double_ref=%s half_ref=%s low_spur=%s charge_pump=%d muxout=%d",
			bank.R2.Divider(), onOff(bank.R2.DoubleR()), onOff(bank.R2.HalfR()),
			onOff(bank.R2.LowSpur()), bank.R2.ChargePump(), bank.R2.Muxout()),
		fmt.Sprintf("clock_divider=%d clock_div_mode=%d csr=%s",
			bank.R3.ClockDivider(), bank.R3.ClockDivMode(), onOff(bank.R3.CSR())),
		fmt.Sprintf("output_power=%d rf_enable=%s divider_select=%d",
			bank.R4.OutputPower(), onOff(bank.R4.RFEnable()), bank.R4.DividerSelect()),
		fmt.Sprintf("ld_pin_mode=%d", bank.R5.LDPinMode()),
	}
	for i, word := range bank.Words() {
		fmt.Fprintf(w, "R%d: 0x%08X  %s\n", i, word, decoded[i])
	}
}

func doFlash(synth *valon.Synth) error {
	if err := synth.Flash(); err != nil {
		return err
	}
	fmt.Println("Settings written to flash")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
