// valon-load-config: Load synthesizer configuration from a file
//
// This tool reads a configuration saved by valon-dump-config and writes it
// to a Valon 5007. With -verify the configuration is read back and
// compared; with -flash it is persisted so the device powers up with it.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/herlein/govalon/pkg/config"
	"github.com/herlein/govalon/pkg/transport"
	"github.com/herlein/govalon/pkg/valon"
)

var (
	serialPort = flag.String("p", "", "Serial port (e.g. /dev/ttyUSB0)")
	tcpAddr    = flag.String("tcp", "", "TCP bridge address (host:port), used instead of -p")
	timeout    = flag.Duration("t", 0, "Read timeout (0 = library default)")
	verify     = flag.Bool("verify", false, "Read the configuration back and compare")
	persist    = flag.Bool("flash", false, "Write settings to flash after loading")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <config-file>\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	configuration, err := config.LoadFromFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded configuration from %s (saved %s)\n",
			flag.Arg(0), configuration.Timestamp.Format(time.RFC3339))
	}

	port, err := openTransport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	synth := valon.New(port)

	if *verbose {
		fmt.Println("Writing configuration...")
	}
	if err := config.ApplyToDevice(synth, configuration); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to apply configuration: %v\n", err)
		os.Exit(1)
	}

	if *verify {
		if err := verifyConfig(synth, configuration); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Verification failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Verification OK")
	}

	if *persist {
		if err := synth.Flash(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Flash failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Settings written to flash")
	}

	fmt.Println("Configuration applied")
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

func verifyConfig(synth *valon.Synth, want *config.DeviceConfig) error {
	got, err := config.DumpFromDevice(synth)
	if err != nil {
		return fmt.Errorf("failed to read back configuration: %w", err)
	}

	if got.ReferenceHz != want.ReferenceHz {
		return fmt.Errorf("reference is %d Hz, want %d Hz", got.ReferenceHz, want.ReferenceHz)
	}
	if got.ExternalRef != want.ExternalRef {
		return fmt.Errorf("reference source is %s, want %s",
			got.ReferenceSourceString(), want.ReferenceSourceString())
	}

	for _, ch := range valon.Channels {
		g, w := got.Channel(ch), want.Channel(ch)
		if math.Abs(g.FrequencyMHz-w.FrequencyMHz) > valon.DefaultChannelSpacing {
			return fmt.Errorf("channel %s frequency is %.6f MHz, want %.6f MHz",
				ch, g.FrequencyMHz, w.FrequencyMHz)
		}
		if g.RFLevelDBm != w.RFLevelDBm {
			return fmt.Errorf("channel %s level is %d dBm, want %d dBm",
				ch, g.RFLevelDBm, w.RFLevelDBm)
		}
		if g.Options != w.Options {
			return fmt.Errorf("channel %s options are %+v, want %+v", ch, g.Options, w.Options)
		}
		if g.Label != w.Label {
			return fmt.Errorf("channel %s label is %q, want %q", ch, g.Label, w.Label)
		}
	}
	return nil
}
