package hw

import "image/color"

// Test doubles for the hardware interfaces. They are kept in the package
// proper (not _test files) so every service test can share them.

// ---- FakeClock ----

// FakeClock is a manually advanced millisecond clock. SleepMillis advances
// time and fires any scheduled pin changes, which lets tests script level
// changes that land mid-debounce.
type FakeClock struct {
	now uint32

	// OnAdvance, if set, is called after every 1ms step with the new time.
	OnAdvance func(now uint32)
}

func NewFakeClock(start uint32) *FakeClock { return &FakeClock{now: start} }

func (c *FakeClock) NowMillis() uint32 { return c.now }

func (c *FakeClock) SleepMillis(ms uint32) { c.Advance(ms) }

// Advance moves the clock forward one millisecond at a time so scheduled
// callbacks observe every step.
func (c *FakeClock) Advance(ms uint32) {
	for i := uint32(0); i < ms; i++ {
		c.now++
		if c.OnAdvance != nil {
			c.OnAdvance(c.now)
		}
	}
}

// ---- FakePin ----

// FakePin is a settable button level.
type FakePin struct {
	Level bool
}

func (p *FakePin) Pressed() bool { return p.Level }

// ---- FakeStrip ----

// FakeStrip records pixel writes and flushes.
type FakeStrip struct {
	Pixels     []color.RGBA
	Brightness uint8
	Flushes    int
	// Flushed is a copy of Pixels at the last Flush.
	Flushed []color.RGBA
}

func NewFakeStrip(n int) *FakeStrip {
	return &FakeStrip{
		Pixels:  make([]color.RGBA, n),
		Flushed: make([]color.RGBA, n),
	}
}

func (s *FakeStrip) Len() int { return len(s.Pixels) }

func (s *FakeStrip) SetPixel(i int, c color.RGBA) {
	if i >= 0 && i < len(s.Pixels) {
		s.Pixels[i] = c
	}
}

func (s *FakeStrip) Fill(c color.RGBA) {
	for i := range s.Pixels {
		s.Pixels[i] = c
	}
}

func (s *FakeStrip) Flush() {
	s.Flushes++
	copy(s.Flushed, s.Pixels)
}

func (s *FakeStrip) SetBrightness(b uint8) { s.Brightness = b }

// ---- FakeStore ----

// FakeStore is a map-backed byte store reporting the unset sentinel (255)
// for addresses never written, matching erased flash.
type FakeStore struct {
	Cells  map[uint8]byte
	Writes int
}

func NewFakeStore() *FakeStore { return &FakeStore{Cells: map[uint8]byte{}} }

func (s *FakeStore) ReadByte(addr uint8) byte {
	if v, ok := s.Cells[addr]; ok {
		return v
	}
	return 255
}

func (s *FakeStore) WriteByteIfChanged(addr uint8, b byte) {
	if v, ok := s.Cells[addr]; ok && v == b {
		return
	}
	s.Cells[addr] = b
	s.Writes++
}
