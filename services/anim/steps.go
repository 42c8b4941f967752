package anim

import (
	"image/color"

	"pendant-go/hw"
	"pendant-go/x/mathx"
)

// Animation renders one frame per Step call. Implementations keep any
// cross-frame state in their own typed fields (their "scratch"), reset to
// zero whenever the runner re-initializes them.
type Animation interface {
	Name() string
	// Delay is the minimum interval between rendered frames, in ms.
	Delay() uint32
	// Reset zeroes the per-animation scratch.
	Reset()
	// Step paints the frame into the strip buffer. It must not flush.
	Step(frame uint8, px hw.PixelStrip)
}

// Sequence returns the fixed animation order the button cycles through.
func Sequence(l Layout) []Animation {
	return []Animation{
		&rainbow{},
		&rainbowCycle{},
		&theaterChaseRainbow{},
		newFire(l),
		newInsideOutPulse(l),
	}
}

// ---- Rainbow ----

// rainbow shifts the full color wheel along the strip one step per frame.
type rainbow struct{}

func (*rainbow) Name() string  { return "rainbow" }
func (*rainbow) Delay() uint32 { return 25 }
func (*rainbow) Reset()        {}

func (*rainbow) Step(frame uint8, px hw.PixelStrip) {
	for i := 0; i < px.Len(); i++ {
		px.SetPixel(i, Wheel(uint8(i)+frame))
	}
}

// ---- Rainbow cycle ----

// rainbowCycle spreads the full spectrum evenly across the strip
// regardless of its length.
type rainbowCycle struct{}

func (*rainbowCycle) Name() string  { return "rainbow_cycle" }
func (*rainbowCycle) Delay() uint32 { return 25 }
func (*rainbowCycle) Reset()        {}

func (*rainbowCycle) Step(frame uint8, px hw.PixelStrip) {
	n := px.Len()
	for i := 0; i < n; i++ {
		px.SetPixel(i, Wheel(uint8(i*256/n)+frame))
	}
}

// ---- Theater chase rainbow ----

// theaterChaseRainbow lights every third pixel, offset by frame mod 3, on
// odd frames and blanks everything on even frames.
type theaterChaseRainbow struct{}

func (*theaterChaseRainbow) Name() string  { return "theater_chase" }
func (*theaterChaseRainbow) Delay() uint32 { return 75 }
func (*theaterChaseRainbow) Reset()        {}

func (*theaterChaseRainbow) Step(frame uint8, px hw.PixelStrip) {
	px.Fill(black)
	if frame&1 == 0 {
		return
	}
	n := px.Len()
	for i := int(frame % 3); i < n; i += 3 {
		px.SetPixel(i, Wheel(uint8((i+int(frame))%255)))
	}
}

// ---- Fire ----

const (
	fireCells    = 8
	fireCooling  = 55
	fireSparking = 120
)

// fire runs a 1-D heat model over eight cells and broadcasts each cell's
// color to the height band of pixels it belongs to.
type fire struct {
	layout Layout
	heat   [fireCells]uint8
	rng    uint32
}

func newFire(l Layout) *fire { return &fire{layout: l} }

func (*fire) Name() string  { return "fire" }
func (*fire) Delay() uint32 { return 45 }

func (f *fire) Reset() {
	f.heat = [fireCells]uint8{}
}

// rand8 is a xorshift32 draw in [0, n). Allocation free; the zero seed is
// replaced lazily.
func (f *fire) rand8(n uint8) uint8 {
	if f.rng == 0 {
		f.rng = 0x9e3779b9
	}
	f.rng ^= f.rng << 13
	f.rng ^= f.rng >> 17
	f.rng ^= f.rng << 5
	return uint8(f.rng % uint32(n))
}

func (f *fire) Step(_ uint8, px hw.PixelStrip) {
	// Cool every cell a random amount.
	for i := range f.heat {
		f.heat[i] = mathx.SatSub8(f.heat[i], f.rand8(fireCooling*10/fireCells+2))
	}

	// Diffuse heat upward: each cell averages with its two predecessors.
	for k := fireCells - 1; k >= 2; k-- {
		f.heat[k] = uint8((uint16(f.heat[k-1]) + 2*uint16(f.heat[k-2])) / 3)
	}

	// Occasionally ignite a spark near the bottom.
	if f.rand8(255) < fireSparking {
		y := f.rand8(3)
		f.heat[y] = mathx.SatAdd8(f.heat[y], 160+f.rand8(96))
	}

	for b, band := range f.layout.Bands {
		if b >= fireCells {
			break
		}
		c := HeatColor(f.heat[b])
		for _, i := range band {
			px.SetPixel(i, c)
		}
	}
}

// ---- Inside-out pulse ----

// insideOutPulse drives the innermost pixel group and the rest of the
// strip with phase-offset cubic waves, pulsing a red hue from the center
// outward.
type insideOutPulse struct {
	inner []int
	outer []int
}

func newInsideOutPulse(l Layout) *insideOutPulse {
	return &insideOutPulse{inner: l.Inner, outer: l.Outer()}
}

func (*insideOutPulse) Name() string  { return "pulse" }
func (*insideOutPulse) Delay() uint32 { return 20 }
func (*insideOutPulse) Reset()        {}

func (p *insideOutPulse) Step(frame uint8, px hw.PixelStrip) {
	paint(px, p.inner, redWithSaturation(cubicWave(frame)))
	paint(px, p.outer, redWithSaturation(cubicWave(frame+128)))
}

// redWithSaturation blends white (s=0) toward pure red (s=255).
func redWithSaturation(s uint8) color.RGBA {
	return color.RGBA{R: 255, G: 255 - s, B: 255 - s, A: 255}
}

func paint(px hw.PixelStrip, group []int, c color.RGBA) {
	for _, i := range group {
		px.SetPixel(i, c)
	}
}
