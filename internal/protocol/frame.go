package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame represents a decoded Enttec message
type Frame struct {
	Label   byte   // Message label (e.g. LabelSendDMX)
	Length  uint16 // Payload length from the header
	Payload []byte // Payload bytes (copy, safe to retain)
	Raw     []byte // Original frame bytes for debugging
}

// ReadFrame reads one Enttec message from the reader.
// Bytes before the first 0x7E are not skipped; a misaligned stream returns
// a FramingError and the caller decides whether to resynchronise.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	if header[0] != StartOfMessage {
		return nil, &FramingError{
			Reason: fmt.Sprintf("start byte 0x%02x, expected 0x%02x", header[0], StartOfMessage),
			Offset: 0,
		}
	}

	length := binary.LittleEndian.Uint16(header[2:HeaderSize])
	if int(length) > MaxPayloadSize {
		return nil, &FramingError{
			Reason: fmt.Sprintf("payload length %d exceeds %d", length, MaxPayloadSize),
			Offset: 2,
		}
	}

	rest := make([]byte, int(length)+1)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("failed to read frame body: %w", err)
	}

	raw := append(header, rest...)
	return ParseFrame(raw)
}

// LabelName returns a human-readable name for a message label
func LabelName(label byte) string {
	switch label {
	case LabelReprogramFirmware:
		return "ReprogramFirmware"
	case LabelGetWidgetParams:
		return "GetWidgetParams"
	case LabelSetWidgetParams:
		return "SetWidgetParams"
	case LabelReceivedDMX:
		return "ReceivedDMX"
	case LabelSendDMX:
		return "SendDMX"
	case LabelSendRDM:
		return "SendRDM"
	case LabelReceiveDMXOnChange:
		return "ReceiveDMXOnChange"
	case LabelGetSerialNumber:
		return "GetSerialNumber"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", label)
	}
}

// String returns a debug representation of the frame
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{label=%s, len=%d, payload=%d bytes}",
		LabelName(f.Label), f.Length, len(f.Payload))
}
