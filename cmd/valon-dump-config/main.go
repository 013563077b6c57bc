// valon-dump-config: Dump synthesizer configuration to a file
//
// This tool connects to a Valon 5007, reads the full configuration of both
// channels and the shared reference, and saves it to a JSON or YAML file.
// The configuration can later be loaded using valon-load-config.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/herlein/govalon/pkg/config"
	"github.com/herlein/govalon/pkg/transport"
	"github.com/herlein/govalon/pkg/valon"
)

var (
	serialPort = flag.String("p", "", "Serial port (e.g. /dev/ttyUSB0)")
	tcpAddr    = flag.String("tcp", "", "TCP bridge address (host:port), used instead of -p")
	timeout    = flag.Duration("t", 0, "Read timeout (0 = library default)")
	outputFile = flag.String("o", "", "Output file path (default: etc/valon/<name>.json)")
	name       = flag.String("name", "synth", "Snapshot name used for the default path")
	jsonOutput = flag.Bool("json", false, "Print config to stdout as JSON instead of a file")
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

	if *verbose {
		fmt.Println("Reading device configuration...")
	}

	configuration, err := config.DumpFromDevice(synth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to dump configuration: %v\n", err)
		os.Exit(1)
	}

	// Output to stdout as JSON
	if *jsonOutput {
		data, err := json.MarshalIndent(configuration, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to marshal configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	path := *outputFile
	if path == "" {
		path = config.GetConfigPath(*name)
	}

	if err := config.SaveToFile(configuration, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to save configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration saved to: %s\n", path)

	if *verbose {
		printConfigSummary(configuration)
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

func printConfigSummary(cfg *config.DeviceConfig) {
	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("  Reference:  %.6f MHz (%s)\n", cfg.ReferenceMHz(), cfg.ReferenceSourceString())
	printChannelSummary("A", &cfg.ChannelA)
	printChannelSummary("B", &cfg.ChannelB)
}

func printChannelSummary(name string, ch *config.ChannelConfig) {
	lock := "unlocked"
	if ch.PhaseLocked {
		lock = "locked"
	}
	fmt.Printf("  Channel %s:  %.6f MHz  %+d dBm  %s  %q\n",
		name, ch.FrequencyMHz, ch.RFLevelDBm, lock, ch.Label)
}
