package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDMX(t *testing.T) {
	tests := []struct {
		name        string
		channels    []byte
		wantErr     bool
		checkFields func(t *testing.T, frame []byte)
	}{
		{
			name:     "empty universe",
			channels: []byte{},
			checkFields: func(t *testing.T, frame []byte) {
				assert.Equal(t, []byte{0x7E, 0x06, 0x01, 0x00, 0x00, 0xE7}, frame)
			},
		},
		{
			name:     "reference fixture white",
			channels: []byte{255, 255, 255, 255, 0, 0},
			checkFields: func(t *testing.T, frame []byte) {
				want := []byte{0x7E, 0x06, 0x07, 0x00, 0x00, 255, 255, 255, 255, 0, 0, 0xE7}
				assert.Equal(t, want, frame)
			},
		},
		{
			name:     "full universe all on",
			channels: bytes.Repeat([]byte{0xFF}, MaxChannels),
			checkFields: func(t *testing.T, frame []byte) {
				assert.Len(t, frame, MaxFrameSize)
				assert.Equal(t, 518, len(frame))
				assert.Equal(t, uint16(513), binary.LittleEndian.Uint16(frame[2:4]))
				assert.Equal(t, byte(DMXStartCode), frame[4])
				assert.Equal(t, byte(EndOfMessage), frame[len(frame)-1])
			},
		},
		{
			name:     "too many channels",
			channels: make([]byte, MaxChannels+1),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := EncodeDMX(tt.channels)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsEncodingError(err))
				assert.Nil(t, frame)
				return
			}
			require.NoError(t, err)
			if tt.checkFields != nil {
				tt.checkFields(t, frame)
			}
		})
	}
}

func TestEncodeDMXLengthProperty(t *testing.T) {
	for n := 0; n <= MaxChannels; n++ {
		channels := make([]byte, n)
		for i := range channels {
			channels[i] = byte(i * 7)
		}

		frame, err := EncodeDMX(channels)
		require.NoError(t, err, "length %d", n)

		require.Len(t, frame, n+6, "length %d", n)
		require.Equal(t, byte(StartOfMessage), frame[0])
		require.Equal(t, byte(LabelSendDMX), frame[1])
		require.Equal(t, uint16(n+1), binary.LittleEndian.Uint16(frame[2:4]))
		require.Equal(t, byte(EndOfMessage), frame[len(frame)-1])
		require.Equal(t, channels, frame[5:len(frame)-1])
	}
}

func TestEncodeDMXDoesNotMutateInput(t *testing.T) {
	channels := []byte{1, 2, 3, 4}
	original := append([]byte(nil), channels...)

	frame, err := EncodeDMX(channels)
	require.NoError(t, err)

	// Scribble over the frame; the input must stay as it was
	for i := range frame {
		frame[i] = 0xAA
	}
	assert.Equal(t, original, channels)
}

func TestBuildFrame(t *testing.T) {
	frame, err := BuildFrame(LabelGetSerialNumber, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7E, 0x0A, 0x00, 0x00, 0xE7}, frame)

	_, err = BuildFrame(LabelSetWidgetParams, make([]byte, MaxPayloadSize+1))
	require.Error(t, err)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, MaxPayloadSize+1, encErr.Count)
	assert.Equal(t, "payload bytes", encErr.What)
}

func TestBuildGetWidgetParams(t *testing.T) {
	frame := BuildGetWidgetParams()

	parsed, err := ParseFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, byte(LabelGetWidgetParams), parsed.Label)
	assert.Equal(t, uint16(2), parsed.Length)
}
