//go:build tinygo

// Package neopixel drives a WS2812 strip behind the hw.PixelStrip
// interface. Brightness is applied in software: the logical buffer keeps
// full-range colors and Flush writes a scaled copy, so re-rendering is
// never needed after a brightness change.
package neopixel

import (
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"

	"pendant-go/x/mathx"
)

type Strip struct {
	dev    ws2812.Device
	pixels []color.RGBA
	scaled []color.RGBA
	scale  uint8
}

func New(pin machine.Pin, count int) *Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Strip{
		dev:    ws2812.New(pin),
		pixels: make([]color.RGBA, count),
		scaled: make([]color.RGBA, count),
		scale:  255,
	}
}

func (s *Strip) Len() int { return len(s.pixels) }

func (s *Strip) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

func (s *Strip) Fill(c color.RGBA) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

func (s *Strip) SetBrightness(b uint8) { s.scale = b }

// Flush pushes the scaled buffer out. The bit-banged WS2812 protocol is
// timing-critical, so the write runs with interrupts disabled; a pending
// button edge is latched by hardware and picked up right after.
func (s *Strip) Flush() {
	for i, p := range s.pixels {
		s.scaled[i] = color.RGBA{
			R: mathx.Scale8(p.R, s.scale),
			G: mathx.Scale8(p.G, s.scale),
			B: mathx.Scale8(p.B, s.scale),
			A: 255,
		}
	}
	state := interrupt.Disable()
	s.dev.WriteColors(s.scaled)
	interrupt.Restore(state)
}
