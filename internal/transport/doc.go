// Package transport opens the serial link to a DMX USB adapter.
//
// The Enttec DMX USB Pro protocol runs at 115200 baud, 8 data bits, no
// parity, one stop bit and no flow control. These are protocol requirements,
// so Open takes only a port name. The returned *Serial is an io.WriteCloser
// suitable for dmx.NewBuffer; its Close is idempotent.
//
// Identify sends the serial-number and widget-parameter requests and waits
// for the replies, which is how `dmxstrobe ports --identify` tells a real
// DMX USB Pro from any other FTDI serial device.
package transport
