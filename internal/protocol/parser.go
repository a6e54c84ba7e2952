package protocol

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ParseFrame validates and decodes a complete Enttec message.
//
// Validation checks:
//   - At least EnvelopeSize bytes
//   - Start byte 0x7E
//   - End byte 0xE7
//   - Length field matches the number of payload bytes present
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) < EnvelopeSize {
		return nil, &FramingError{
			Reason: fmt.Sprintf("frame too short: %d bytes (minimum %d)", len(data), EnvelopeSize),
			Offset: -1,
		}
	}

	if data[0] != StartOfMessage {
		return nil, &FramingError{
			Reason: fmt.Sprintf("start byte 0x%02x, expected 0x%02x", data[0], StartOfMessage),
			Offset: 0,
		}
	}

	last := len(data) - 1
	if data[last] != EndOfMessage {
		return nil, &FramingError{
			Reason: fmt.Sprintf("end byte 0x%02x, expected 0x%02x", data[last], EndOfMessage),
			Offset: last,
		}
	}

	length := binary.LittleEndian.Uint16(data[2:HeaderSize])
	if got := len(data) - EnvelopeSize; int(length) != got {
		return nil, &FramingError{
			Reason: fmt.Sprintf("length field %d, frame carries %d payload bytes", length, got),
			Offset: 2,
		}
	}

	payload := make([]byte, length)
	copy(payload, data[HeaderSize:last])

	return &Frame{
		Label:   data[1],
		Length:  length,
		Payload: payload,
		Raw:     data,
	}, nil
}

// DMX returns the channel data of a send-DMX frame with the start code removed.
func (f *Frame) DMX() ([]byte, error) {
	if f.Label != LabelSendDMX {
		return nil, fmt.Errorf("frame label %s does not carry DMX data", LabelName(f.Label))
	}
	if len(f.Payload) == 0 {
		return nil, &FramingError{Reason: "send-DMX payload missing start code", Offset: HeaderSize}
	}
	if f.Payload[0] != DMXStartCode {
		return nil, &FramingError{
			Reason: fmt.Sprintf("unsupported start code 0x%02x", f.Payload[0]),
			Offset: HeaderSize,
		}
	}
	if len(f.Payload)-1 > MaxChannels {
		return nil, &FramingError{
			Reason: fmt.Sprintf("%d channels exceeds universe size %d", len(f.Payload)-1, MaxChannels),
			Offset: 2,
		}
	}
	return f.Payload[1:], nil
}

// Dump returns an annotated hex dump of a frame for debugging:
//
//	7e          start
//	06          label SendDMX
//	01 02       length 513
//	00          start code
//	ff ff 00 .. channels 1-16
//	e7          end
//
// Channel lines hold 16 values each. Malformed input is dumped as raw hex.
func Dump(frame []byte) string {
	var b strings.Builder

	if len(frame) < EnvelopeSize {
		b.WriteString(hexBytes(frame))
		b.WriteString("  (truncated)\n")
		return b.String()
	}

	length := binary.LittleEndian.Uint16(frame[2:HeaderSize])
	fmt.Fprintf(&b, "%-50s start\n", hexBytes(frame[0:1]))
	fmt.Fprintf(&b, "%-50s label %s\n", hexBytes(frame[1:2]), LabelName(frame[1]))
	fmt.Fprintf(&b, "%-50s length %d\n", hexBytes(frame[2:HeaderSize]), length)

	body := frame[HeaderSize : len(frame)-1]
	if frame[1] == LabelSendDMX && len(body) > 0 {
		fmt.Fprintf(&b, "%-50s start code\n", hexBytes(body[0:1]))
		channels := body[1:]
		for i := 0; i < len(channels); i += 16 {
			end := i + 16
			if end > len(channels) {
				end = len(channels)
			}
			fmt.Fprintf(&b, "%-50s channels %d-%d\n", hexBytes(channels[i:end]), i+1, end)
		}
	} else if len(body) > 0 {
		fmt.Fprintf(&b, "%-50s payload\n", hexBytes(body))
	}

	fmt.Fprintf(&b, "%-50s end\n", hexBytes(frame[len(frame)-1:]))
	return b.String()
}

func hexBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}
