// lsvalon: List serial ports with a Valon synthesizer attached
//
// The synthesizer ships with an FTDI USB-serial bridge, so by default this
// tool lists serial ports whose USB IDs match that bridge. Use -a to list
// every serial port, or -usb to inspect the USB bus directly.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/gousb"
	"go.bug.st/serial/enumerator"
)

// USB IDs of the FT232R bridge on the synthesizer board.
const (
	ftdiVID = "0403"
	ftdiPID = "6001"
)

var (
	showAll = flag.Bool("a", false, "List all serial ports, not just FTDI bridges")
	usbInfo = flag.Bool("usb", false, "Show USB device details from the bus")
	verbose = flag.Bool("v", false, "Verbose output (show USB IDs and serial numbers)")
)

func main() {
	flag.Parse()

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to enumerate ports: %v\n", err)
		os.Exit(1)
	}

	matches := 0
	for _, port := range ports {
		if !*showAll && !isSynthBridge(port) {
			continue
		}
		matches++
		if *verbose {
			fmt.Printf("%s:\n", port.Name)
			if port.IsUSB {
				fmt.Printf("  USB ID:   %s:%s\n", port.VID, port.PID)
				fmt.Printf("  Serial:   %s\n", port.SerialNumber)
				fmt.Printf("  Product:  %s\n", port.Product)
			} else {
				fmt.Println("  (not a USB port)")
			}
		} else {
			fmt.Printf("  %s\n", port.Name)
		}
	}

	if matches == 0 {
		if *showAll {
			fmt.Println("No serial ports found")
		} else {
			fmt.Println("No synthesizer bridges found (use -a to list every serial port)")
		}
		return
	}

	if *usbInfo {
		fmt.Println()
		if err := listUSB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !*verbose && !*showAll {
		fmt.Println()
		fmt.Println("Use -p with the other tools to select a port:")
		fmt.Println("  valonctl -p /dev/ttyUSB0 status")
	}
}

func isSynthBridge(port *enumerator.PortDetails) bool {
	return port.IsUSB && port.VID == ftdiVID && port.PID == ftdiPID
}

func listUSB() error {
	ctx := gousb.NewContext()
	defer ctx.Close()

	devices, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(0x0403) && desc.Product == gousb.ID(0x6001)
	})
	for _, dev := range devices {
		defer dev.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to open USB devices: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No FTDI bridges on the USB bus")
		return nil
	}

	fmt.Printf("Found %d FTDI bridge(s) on the USB bus:\n\n", len(devices))
	for i, dev := range devices {
		manufacturer, _ := dev.Manufacturer()
		product, _ := dev.Product()
		serialNumber, _ := dev.SerialNumber()

		fmt.Printf("Device #%d:\n", i)
		fmt.Printf("  Bus:Address:  %d:%d\n", dev.Desc.Bus, dev.Desc.Address)
		fmt.Printf("  Manufacturer: %s\n", manufacturer)
		fmt.Printf("  Product:      %s\n", product)
		fmt.Printf("  Serial:       %s\n", serialNumber)
		fmt.Println()
	}
	return nil
}
