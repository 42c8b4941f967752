package anim

import (
	"image/color"

	"pendant-go/x/mathx"
)

var black = color.RGBA{A: 255}

// Wheel maps 0..255 around the RGB color wheel: red -> green -> blue ->
// red.
func Wheel(pos uint8) color.RGBA {
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, G: pos * 3, A: 255}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: 255 - pos*3, B: pos * 3, A: 255}
	default:
		pos -= 170
		return color.RGBA{B: 255 - pos*3, R: pos * 3, A: 255}
	}
}

// HeatColor maps a heat cell to the classic black -> red -> yellow ->
// white ramp.
func HeatColor(h uint8) color.RGBA {
	// Scale into 0..191 and split into three 64-step segments.
	t192 := uint8((uint16(h) * 191) / 255)
	ramp := (t192 & 0x3f) << 2
	switch {
	case t192&0x80 != 0: // hottest third: yellow to white
		return color.RGBA{R: 255, G: 255, B: ramp, A: 255}
	case t192&0x40 != 0: // middle third: red to yellow
		return color.RGBA{R: 255, G: ramp, A: 255}
	default: // coolest third: black to red
		return color.RGBA{R: ramp, A: 255}
	}
}

// cubicWave is a smoothed triangle wave of the 8-bit phase: a cubic
// ease-in/out applied to triwave, peaking at phase 128.
func cubicWave(p uint8) uint8 {
	var t uint32
	if p < 128 {
		t = uint32(p) * 2
	} else {
		t = uint32(255-p) * 2
	}
	t = mathx.Min(t, 255)
	// 3t^2 - 2t^3, normalized to 8 bits.
	return uint8((3*t*t*255 - 2*t*t*t) / (255 * 255))
}
