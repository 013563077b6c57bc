// valon-flash: Persist the synthesizer's current settings
//
// Settings written over the serial line are volatile until flashed. This
// tool issues the flash command so the device powers up with whatever it
// is currently running.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/herlein/govalon/pkg/transport"
	"github.com/herlein/govalon/pkg/valon"
)

var (
	serialPort = flag.String("p", "", "Serial port (e.g. /dev/ttyUSB0)")
	tcpAddr    = flag.String("tcp", "", "TCP bridge address (host:port), used instead of -p")
	timeout    = flag.Duration("t", 0, "Read timeout (0 = library default)")
	retries    = flag.Int("r", 3, "Attempts before giving up")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	port, err := openTransport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	synth := valon.New(port)

	var lastErr error
	for attempt := 1; attempt <= *retries; attempt++ {
		if attempt > 1 {
			if *verbose {
				fmt.Printf("Retrying (%d/%d)...\n", attempt, *retries)
			}
			time.Sleep(500 * time.Millisecond)
		}
		if lastErr = synth.Flash(); lastErr == nil {
			fmt.Println("Settings written to flash")
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Error: Flash failed: %v\n", lastErr)
	os.Exit(1)
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
