package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/dmxstrobe/internal/dmx"
)

func TestReferenceChannels(t *testing.T) {
	base := 17
	assert.Equal(t, 17, DimmerChannel(base))
	assert.Equal(t, 18, RedChannel(base))
	assert.Equal(t, 19, GreenChannel(base))
	assert.Equal(t, 20, BlueChannel(base))
	assert.Equal(t, 21, StrobeRateChannel(base))
	assert.Equal(t, 22, ProgramChannel(base))

	for _, c := range Controls {
		ch, err := Par6.Channel(c, base)
		require.NoError(t, err)
		assert.Equal(t, base+int(c), ch, c.String())
	}
}

func TestLayoutChannelBounds(t *testing.T) {
	tests := []struct {
		name    string
		base    int
		wantErr bool
	}{
		{name: "first address", base: 1},
		{name: "last address that fits", base: 507},
		{name: "footprint past 512", base: 508, wantErr: true},
		{name: "base 510", base: 510, wantErr: true},
		{name: "base zero", base: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Par6.Channel(Dimmer, tt.base)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dmx.IsOutOfRange(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestControlNames(t *testing.T) {
	for _, c := range Controls {
		parsed, err := ParseControl(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseControl("Strobe_Rate")
	require.NoError(t, err)
	assert.Equal(t, StrobeRate, c)

	c, err = ParseControl("mode")
	require.NoError(t, err)
	assert.Equal(t, Program, c)

	_, err = ParseControl("pan")
	assert.Error(t, err)

	assert.Equal(t, "Control(42)", Control(42).String())
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		offsets map[Control]int
		wantErr bool
		verify  func(t *testing.T, l *Layout)
	}{
		{
			name:    "rgb only",
			layout:  "rgb3",
			offsets: map[Control]int{Red: 0, Green: 1, Blue: 2},
			verify: func(t *testing.T, l *Layout) {
				assert.Equal(t, 3, l.Footprint)
				assert.False(t, l.Has(Dimmer))
				assert.Equal(t, []Control{Red, Green, Blue}, l.ControlsInOrder())
			},
		},
		{
			name:    "gap in offsets",
			layout:  "dim-rgb",
			offsets: map[Control]int{Dimmer: 7, Red: 0, Green: 1, Blue: 2},
			verify: func(t *testing.T, l *Layout) {
				assert.Equal(t, 8, l.Footprint)
				assert.NoError(t, l.CheckBase(505))
				assert.Error(t, l.CheckBase(506))
			},
		},
		{name: "no name", offsets: map[Control]int{Red: 0}, wantErr: true},
		{name: "no controls", layout: "empty", wantErr: true},
		{name: "negative offset", layout: "bad", offsets: map[Control]int{Red: -1}, wantErr: true},
		{name: "duplicate offset", layout: "dup", offsets: map[Control]int{Red: 0, Green: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.layout, tt.offsets)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.verify != nil {
				tt.verify(t, l)
			}
		})
	}
}

func TestLayoutMissingControl(t *testing.T) {
	l, err := NewLayout("rgb3", map[Control]int{Red: 0, Green: 1, Blue: 2})
	require.NoError(t, err)

	_, err = l.Channel(Dimmer, 1)
	assert.ErrorIs(t, err, ErrNoSuchControl)
}
