// Package hw holds the narrow interfaces the pendant core uses to reach
// hardware: the LED strip, the one-byte persistent store, the raw button
// level, and the millisecond clock. Real implementations live under
// drivers/ (device) and cmd/pendant-sim (host); the fakes in this package
// back the tests.
package hw

import "image/color"

// PixelStrip is the pixel-buffer sink. SetPixel and Fill mutate the
// buffer; Flush pushes it to the physical strip. The core flushes once
// per rendered animation frame and on every full-strip fill.
type PixelStrip interface {
	Len() int
	SetPixel(i int, c color.RGBA)
	Fill(c color.RGBA)
	Flush()
	// SetBrightness sets the global output scale (0-255). It applies on
	// the next Flush.
	SetBrightness(b uint8)
}

// ByteStore is the persistent byte store. Embedded non-volatile storage
// has no meaningful error return at this layer, so neither do these.
type ByteStore interface {
	ReadByte(addr uint8) byte
	WriteByteIfChanged(addr uint8, b byte)
}

// InputPin reads the raw logical button level (true = pressed; inversion
// for pull-ups is handled by the implementation).
type InputPin interface {
	Pressed() bool
}

// Clock is a monotonic millisecond clock. NowMillis wraps at 2^32; all
// duration comparisons must use unsigned subtraction (x/timex).
// SleepMillis is the only blocking primitive the core uses, and only
// inside the bounded debounce window.
type Clock interface {
	NowMillis() uint32
	SleepMillis(ms uint32)
}
