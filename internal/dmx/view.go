package dmx

// View is a window of Count channels starting at DMX address Start.
// Offsets passed to a View are 0-based within the window.
type View struct {
	buf   *Buffer
	start int
	count int
}

// NewView creates a view of count channels starting at start. It fails with
// an OutOfRangeError unless 1 <= start, count >= 1 and start+count-1 <= 512.
func NewView(buf *Buffer, start, count int) (*View, error) {
	if err := checkChannel("start", start); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &OutOfRangeError{Field: "count", Value: count, Min: 1, Max: UniverseSize - start + 1}
	}
	if last := start + count - 1; last > UniverseSize {
		return nil, &OutOfRangeError{Field: "end", Value: last, Min: 1, Max: UniverseSize}
	}
	return &View{buf: buf, start: start, count: count}, nil
}

// Start returns the first DMX channel of the view
func (v *View) Start() int { return v.start }

// Count returns the number of channels in the view
func (v *View) Count() int { return v.count }

// Set writes the channel at offset within the view, clamping the value
func (v *View) Set(offset, value int) error {
	if err := v.checkOffset(offset); err != nil {
		return err
	}
	v.set(offset, value)
	return nil
}

// Get reads the channel at offset within the view
func (v *View) Get(offset int) (byte, error) {
	if err := v.checkOffset(offset); err != nil {
		return 0, err
	}
	return v.buf.universe[v.start-1+offset], nil
}

// Fill writes the same value to every channel of the view
func (v *View) Fill(value int) {
	for i := 0; i < v.count; i++ {
		v.set(i, value)
	}
}

func (v *View) set(offset, value int) {
	v.buf.universe[v.start-1+offset] = ClampValue(value)
}

func (v *View) checkOffset(offset int) error {
	if offset < 0 || offset >= v.count {
		return &OutOfRangeError{Field: "offset", Value: offset, Min: 0, Max: v.count - 1}
	}
	return nil
}
