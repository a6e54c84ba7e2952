package protocol

import (
	"encoding/binary"
)

// Enttec DMX USB Pro envelope constants
const (
	StartOfMessage = 0x7E
	EndOfMessage   = 0xE7

	// HeaderSize is start byte + label + 2-byte length
	HeaderSize = 4
	// EnvelopeSize is the header plus the trailing end byte
	EnvelopeSize = HeaderSize + 1

	// MaxPayloadSize is the largest payload the widget accepts for any label
	MaxPayloadSize = 600
)

// Message labels (Enttec DMX USB Pro API)
const (
	LabelReprogramFirmware  = 0x01
	LabelGetWidgetParams    = 0x03
	LabelSetWidgetParams    = 0x04
	LabelReceivedDMX        = 0x05
	LabelSendDMX            = 0x06
	LabelSendRDM            = 0x07
	LabelReceiveDMXOnChange = 0x08
	LabelGetSerialNumber    = 0x0A
)

// DMX packet constants
const (
	// DMXStartCode is the null start code that precedes standard dimmer data
	DMXStartCode = 0x00

	// MaxChannels is the number of data channels in one universe
	MaxChannels = 512

	// MaxFrameSize is the size of a send-DMX frame carrying a full universe:
	// 4 header bytes + start code + 512 channels + end byte
	MaxFrameSize = HeaderSize + 1 + MaxChannels + 1
)

// BuildFrame wraps a payload in the Enttec message envelope
//
// Frame Structure:
//
//	[0]     0x7E           Start of message
//	[1]     label          Message label
//	[2-3]   length         Payload length (little-endian uint16)
//	[4+]    payload        Payload bytes
//	[N]     0xE7           End of message
//
// The payload slice is copied, never retained or modified.
func BuildFrame(label byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, &EncodingError{Count: len(payload), Max: MaxPayloadSize, What: "payload bytes"}
	}

	frame := make([]byte, EnvelopeSize+len(payload))

	frame[0] = StartOfMessage
	frame[1] = label
	binary.LittleEndian.PutUint16(frame[2:HeaderSize], uint16(len(payload)))
	copy(frame[HeaderSize:], payload)
	frame[len(frame)-1] = EndOfMessage

	return frame, nil
}

// EncodeDMX builds a "send DMX packet" frame for the given channel values,
// channel 1 first. Fewer than 512 channels may be sent; the adapter holds
// the remaining channels at their previous values.
//
// Returns an EncodingError if more than 512 channels are supplied.
//
// Example:
//
//	frame, err := EncodeDMX([]byte{255, 255, 255, 255, 0, 0})
//	// 7e 06 07 00 00 ff ff ff ff 00 00 e7
func EncodeDMX(channels []byte) ([]byte, error) {
	if len(channels) > MaxChannels {
		return nil, &EncodingError{Count: len(channels), Max: MaxChannels, What: "channels"}
	}

	payload := make([]byte, 1+len(channels))
	payload[0] = DMXStartCode
	copy(payload[1:], channels)

	return BuildFrame(LabelSendDMX, payload)
}

// BuildGetWidgetParams builds a request for the widget's firmware version and
// output timing parameters. The adapter answers with a LabelGetWidgetParams
// frame.
func BuildGetWidgetParams() []byte {
	// Payload is the size of user configuration data to return (none)
	frame, _ := BuildFrame(LabelGetWidgetParams, []byte{0x00, 0x00})
	return frame
}

// BuildGetSerialNumber builds a request for the widget's serial number.
func BuildGetSerialNumber() []byte {
	frame, _ := BuildFrame(LabelGetSerialNumber, nil)
	return frame
}
