package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/dmxstrobe/internal/discovery"
	"github.com/muurk/dmxstrobe/internal/transport"
	"github.com/muurk/dmxstrobe/internal/ui"
)

// Ports command flags
var (
	portsWait    bool
	portsTimeout time.Duration
	portsIdentify   bool
)

func init() {
	rootCmd.AddCommand(portsCmd)
	portsCmd.Flags().BoolVar(&portsWait, "wait", false, "Wait until a DMX adapter is plugged in")
	portsCmd.Flags().DurationVar(&portsTimeout, "timeout", 30*time.Second, "How long --wait waits")
	portsCmd.Flags().BoolVar(&portsIdentify, "identify", false, "Ask each adapter for its serial number and firmware")
}

// portsCmd lists serial ports and marks DMX adapters
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports and DMX adapters",
	Long: `List serial ports on this machine. Ports whose USB ID matches a known
Enttec DMX USB Pro compatible adapter are marked and listed first; with
--port auto (the default) the first of these is used.

With --identify each marked adapter is opened and asked for its serial number
and firmware parameters. A port that does not answer is not a DMX USB Pro.`,
	Example: `  # List ports
  dmxstrobe ports

  # Wait up to a minute for an adapter to be plugged in
  dmxstrobe ports --wait --timeout 1m

  # Show serial number and firmware of each adapter
  dmxstrobe ports --identify`,
	RunE: runPorts,
}

func runPorts(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	printer := ui.NewPrinter(cmd.OutOrStdout())

	if portsWait {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, portsTimeout)
		defer cancel()

		printer.Println(ui.NoteStyle.Render("  Waiting for a DMX adapter..."))
		if _, err := scanner.WaitForAdapter(ctx); err != nil {
			printer.PrintError("No adapter found", err, []string{
				"Check the USB cable and try another port",
				"On Linux, check 'dmesg' for an FTDI device",
			})
			return err
		}
	}

	devices, err := scanner.Scan()
	if err != nil {
		return err
	}
	printer.PrintPorts(devices)

	if portsIdentify {
		identifyAdapters(printer, devices)
	}
	return nil
}

// identifyAdapters identifies every adapter in devices. Failures are printed,
// not returned, so one unplugged adapter does not hide the others.
func identifyAdapters(printer *ui.Printer, devices []*discovery.Device) {
	printer.Newline()
	identified := 0
	for _, d := range devices {
		if !d.Adapter {
			continue
		}
		identified++
		id, err := identifyPort(d.Port)
		printer.PrintIdentity(d.Port, id, err)
	}
	if identified == 0 {
		printer.Println(ui.NoteStyle.Render("  No DMX adapters to identify."))
	}
}

// identifyPort opens a port, asks it to identify itself and closes it
func identifyPort(name string) (*transport.Identity, error) {
	port, err := transport.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = port.Close() }()
	return port.Identify(transport.DefaultReplyTimeout)
}
