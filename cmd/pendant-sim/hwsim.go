package main

import (
	"image/color"
	"os"
	"sync"
	"time"

	"pendant-go/x/mathx"
)

// simClock maps the host's monotonic time onto the 32-bit millisecond
// clock the core runs on.
type simClock struct {
	start time.Time
}

func (c *simClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *simClock) SleepMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// simStrip implements hw.PixelStrip. Flush publishes a brightness-scaled
// snapshot that the renderer reads; the logical buffer keeps full-range
// colors, matching the device driver.
type simStrip struct {
	mu     sync.Mutex
	pixels []color.RGBA
	shown  []color.RGBA
	scale  uint8
}

func newSimStrip(n int) *simStrip {
	return &simStrip{
		pixels: make([]color.RGBA, n),
		shown:  make([]color.RGBA, n),
		scale:  255,
	}
}

func (s *simStrip) Len() int { return len(s.pixels) }

func (s *simStrip) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

func (s *simStrip) Fill(c color.RGBA) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

func (s *simStrip) SetBrightness(b uint8) { s.scale = b }

func (s *simStrip) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pixels {
		s.shown[i] = color.RGBA{
			R: mathx.Scale8(p.R, s.scale),
			G: mathx.Scale8(p.G, s.scale),
			B: mathx.Scale8(p.B, s.scale),
			A: 255,
		}
	}
}

// Snapshot copies the last flushed frame.
func (s *simStrip) Snapshot(dst []color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.shown)
}

// simPin is the virtual pushbutton. Only the main loop touches it.
type simPin struct {
	level bool
}

func (p *simPin) Pressed() bool { return p.level }

// fileStore implements hw.ByteStore on a small host file. Unwritten cells
// read 0xFF, like erased flash.
type fileStore struct {
	path string
	buf  [16]byte
}

func newFileStore(path string) *fileStore {
	s := &fileStore{path: path}
	for i := range s.buf {
		s.buf[i] = 0xFF
	}
	if b, err := os.ReadFile(path); err == nil {
		copy(s.buf[:], b)
	}
	return s
}

func (s *fileStore) ReadByte(addr uint8) byte { return s.buf[addr] }

func (s *fileStore) WriteByteIfChanged(addr uint8, b byte) {
	if s.buf[addr] == b {
		return
	}
	s.buf[addr] = b
	if err := os.WriteFile(s.path, s.buf[:], 0o644); err != nil {
		// Nothing sensible to do mid-frame; the setting just won't stick.
		println("Error: store:", err.Error())
	}
}
