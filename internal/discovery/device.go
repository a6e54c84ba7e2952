package discovery

import (
	"fmt"
	"strings"
)

// Device represents a serial port found on the system
type Device struct {
	// Port is the OS port name (e.g., "/dev/ttyUSB0", "COM3")
	Port string

	// USB is true when the port belongs to a USB device
	USB bool

	// VID and PID are the USB vendor and product IDs as hex strings
	VID string
	PID string

	// SerialNumber is the USB serial number, if the device reports one
	SerialNumber string

	// Product is the USB product string (e.g., "DMX USB PRO")
	Product string

	// Adapter is true when the port matches a known DMX adapter
	Adapter bool
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	if !d.USB {
		return d.Port
	}
	s := fmt.Sprintf("%s [%s]", d.Port, d.USBID())
	if d.Product != "" {
		s += " " + d.Product
	}
	if d.SerialNumber != "" {
		s += " (" + d.SerialNumber + ")"
	}
	return s
}

// USBID returns "vid:pid" in lower case, or "" for non-USB ports
func (d *Device) USBID() string {
	if !d.USB {
		return ""
	}
	return strings.ToLower(d.VID) + ":" + strings.ToLower(d.PID)
}

// KnownAdapter is a USB ID used by Enttec DMX USB Pro compatible adapters
type KnownAdapter struct {
	VID  string
	PID  string
	Name string
}

// KnownAdapters lists the USB IDs treated as DMX adapters.
// Enttec and most clones (AVT, DMXking ultraDMX) ship an FTDI FT232R.
var KnownAdapters = []KnownAdapter{
	{VID: "0403", PID: "6001", Name: "FTDI FT232R (Enttec DMX USB Pro and compatibles)"},
}

// productHints match USB product strings of adapters with unknown IDs
var productHints = []string{"dmx usb pro", "dmx512", "ultradmx"}

// isAdapter reports whether a USB device looks like a DMX adapter
func isAdapter(d *Device) bool {
	if !d.USB {
		return false
	}
	for _, k := range KnownAdapters {
		if strings.EqualFold(d.VID, k.VID) && strings.EqualFold(d.PID, k.PID) {
			return true
		}
	}
	product := strings.ToLower(d.Product)
	for _, hint := range productHints {
		if strings.Contains(product, hint) {
			return true
		}
	}
	return false
}
