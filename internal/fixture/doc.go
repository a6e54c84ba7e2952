// Package fixture maps semantic controls (dimmer, colour, strobe, program)
// onto DMX channels.
//
// A Layout is data: a name, a footprint and a control-to-offset map. The
// reference 6-channel LED par is Par6:
//
//	offset 0  dimmer
//	offset 1  red
//	offset 2  green
//	offset 3  blue
//	offset 4  strobe rate (0 off, 1-255 slow to fast, the fixture's own strobe)
//	offset 5  program
//
// A Patch places a Layout at a base address and writes through any
// ChannelWriter, normally a *dmx.Buffer:
//
//	par, _ := fixture.NewPatch("par", fixture.Par6, 1)
//	par.SetRGB(buf, 255, 0, 0)
//	buf.Transmit()
//
// Every operation resolves its channels before writing, so an invalid base
// (one where the footprint would run past channel 512) writes nothing.
package fixture
