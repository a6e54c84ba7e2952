// Package protocol implements the Enttec DMX USB Pro serial framing protocol.
//
// This package builds and validates the messages exchanged with USB-to-DMX
// adapters that speak the Enttec DMX USB Pro widget protocol (Enttec, AVT
// DMX512 USB and most FTDI based clones). It performs no I/O of its own beyond
// optionally reading a frame from an io.Reader, and it keeps no state.
//
// # Message Envelope
//
// Every message shares the same envelope:
//   - Start of message: 0x7E
//   - Label: 1 byte identifying the request (0x06 = send DMX packet)
//   - Payload length: 2 bytes (little-endian)
//   - Payload: variable length
//   - End of message: 0xE7
//
// # Send DMX Packet
//
// A send-DMX payload is the DMX start code (0x00) followed by up to 512
// channel values, channel 1 first:
//
//	Byte 0:      0x7E
//	Byte 1:      0x06
//	Bytes 2-3:   1 + channel count, little-endian
//	Byte 4:      0x00 (start code)
//	Bytes 5..N:  channel data
//	Byte N+1:    0xE7
//
// A full universe is 518 bytes on the wire: 4 header bytes, the start
// code, 512 channels and the end byte.
//
// # Usage Example - Encoding
//
//	frame, err := protocol.EncodeDMX(universe[:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = port.Write(frame)
//
// # Usage Example - Diagnostics
//
//	f, err := protocol.ParseFrame(captured)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f)
//	fmt.Println(protocol.Dump(captured))
//
// # Error Handling
//
// The package distinguishes between:
//   - EncodingError: more channels than one universe can carry
//   - FramingError: bytes that are not a well-formed Enttec message
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package protocol
