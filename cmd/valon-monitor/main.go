// valon-monitor: Watch synthesizer output frequencies and lock status
//
// Polls both channels at a fixed interval and prints one line per channel,
// coloring the phase lock state. Useful while adjusting an external
// reference or waiting for a retune to settle.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/herlein/govalon/pkg/transport"
	"github.com/herlein/govalon/pkg/valon"
)

var (
	serialPort = flag.String("p", "", "Serial port (e.g. /dev/ttyUSB0)")
	tcpAddr    = flag.String("tcp", "", "TCP bridge address (host:port), used instead of -p")
	timeout    = flag.Duration("t", 0, "Read timeout (0 = library default)")
	interval   = flag.Duration("i", 2*time.Second, "Poll interval")
	once       = flag.Bool("once", false, "Print one report and exit")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	port, err := openTransport()
	if err != nil {
		return err
	}
	defer port.Close()

	synth := valon.New(port)

	if *once {
		return report(synth)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	fmt.Printf("Polling every %v (Press Ctrl+C to stop)\n", *interval)
	if err := report(synth); err != nil {
		return err
	}

	for {
		select {
		case <-sigChan:
			fmt.Println("\nStopping...")
			return nil
		case <-ticker.C:
			if err := report(synth); err != nil {
				return err
			}
		}
	}
}

func report(synth *valon.Synth) error {
	now := time.Now().Format("15:04:05")
	for _, ch := range valon.Channels {
		mhz, err := synth.GetFrequency(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		locked, err := synth.GetPhaseLock(ch)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch, err)
		}
		lock := color.RedString("unlocked")
		if locked {
			lock = color.GreenString("locked")
		}
		fmt.Printf("%s  %s  %11.6f MHz  %s\n", now, ch, mhz, lock)
	}
	return nil
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
