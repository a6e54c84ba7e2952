package protocol

import (
	"fmt"
	"strings"
	"time"
)

// breakUnit is the resolution of the break and mark-after-break fields
const breakUnit = 10670 * time.Nanosecond

// WidgetParams is the reply to a get-widget-parameters request
type WidgetParams struct {
	Firmware       uint16        // Firmware version, MSB is the major number
	BreakTime      time.Duration // DMX output break time
	MarkAfterBreak time.Duration // DMX output mark-after-break time
	RefreshRate    int           // Packets per second, 0 means as fast as possible
}

// FirmwareVersion formats the firmware as "major.minor"
func (w *WidgetParams) FirmwareVersion() string {
	return fmt.Sprintf("%d.%d", w.Firmware>>8, w.Firmware&0xFF)
}

// WidgetParams decodes a get-widget-parameters reply.
// Any user configuration bytes after the fifth are ignored.
func (f *Frame) WidgetParams() (*WidgetParams, error) {
	if f.Label != LabelGetWidgetParams {
		return nil, fmt.Errorf("frame label %s is not a widget parameters reply", LabelName(f.Label))
	}
	if len(f.Payload) < 5 {
		return nil, &FramingError{
			Reason: fmt.Sprintf("widget parameters payload is %d bytes (minimum 5)", len(f.Payload)),
			Offset: HeaderSize,
		}
	}
	p := f.Payload
	return &WidgetParams{
		Firmware:       uint16(p[0]) | uint16(p[1])<<8,
		BreakTime:      time.Duration(p[2]) * breakUnit,
		MarkAfterBreak: time.Duration(p[3]) * breakUnit,
		RefreshRate:    int(p[4]),
	}, nil
}

// SerialNumber decodes a get-serial-number reply. The adapter sends four
// BCD bytes, least significant first; the result is eight decimal digits.
func (f *Frame) SerialNumber() (string, error) {
	if f.Label != LabelGetSerialNumber {
		return "", fmt.Errorf("frame label %s is not a serial number reply", LabelName(f.Label))
	}
	if len(f.Payload) != 4 {
		return "", &FramingError{
			Reason: fmt.Sprintf("serial number payload is %d bytes, expected 4", len(f.Payload)),
			Offset: HeaderSize,
		}
	}
	var b strings.Builder
	for i := 3; i >= 0; i-- {
		fmt.Fprintf(&b, "%02x", f.Payload[i])
	}
	return b.String(), nil
}
