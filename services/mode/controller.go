// Package mode is the top-level controller: it consumes one classified
// button event per loop iteration, decides whether to drive the animation
// runner, enter or leave brightness adjustment, or enter or leave the
// flashlight, and owns brightness persistence.
package mode

import (
	"image/color"

	"pendant-go/bus"
	"pendant-go/hw"
	"pendant-go/services/anim"
	"pendant-go/types"
	"pendant-go/x/mathx"
)

// brightnessAddr is the single storage cell holding the persisted
// brightness byte.
const brightnessAddr uint8 = 0

var (
	fillBlack   = color.RGBA{A: 255}
	fillWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	markerRed   = color.RGBA{R: 255, A: 255}
	markerSlots = int(types.BrightnessMax / types.BrightnessStep)
)

// Controller is mutated only from the cooperative main loop.
type Controller struct {
	strip  hw.PixelStrip
	store  hw.ByteStore
	runner *anim.Runner
	conn   *bus.Connection // telemetry; may be nil

	mode       types.Mode
	brightness uint8
}

// NewController loads the persisted brightness (sentinel 255 means never
// set, use the default) and starts in the animation mode.
func NewController(strip hw.PixelStrip, store hw.ByteStore, runner *anim.Runner, conn *bus.Connection) *Controller {
	c := &Controller{
		strip:  strip,
		store:  store,
		runner: runner,
		conn:   conn,
		mode:   types.ModeRunningAnimation,
	}
	if v := store.ReadByte(brightnessAddr); v == types.BrightnessUnset {
		c.brightness = types.BrightnessDefault
	} else {
		c.brightness = mathx.Clamp(v, types.BrightnessMin, types.BrightnessMax)
	}
	strip.SetBrightness(c.brightness)
	c.publishMode()
	c.publishBrightness(false)
	return c
}

func (c *Controller) Mode() types.Mode  { return c.mode }
func (c *Controller) Brightness() uint8 { return c.brightness }

// Step handles one loop iteration. All (state, event) pairs not listed
// are no-ops.
func (c *Controller) Step(ev types.ButtonEvent) {
	switch c.mode {
	case types.ModeRunningAnimation:
		switch ev.Type {
		case types.ButtonLongPressed:
			c.enterBrightnessAdjust()
		case types.ButtonReleased:
			if ev.Releases == 1 {
				c.runner.TransitionToNext()
				c.publishMode()
			} else {
				c.enterFlashlight()
			}
		default:
			c.runner.Advance()
		}

	case types.ModeEnteringBrightnessAdjust:
		// Absorb the release that ends the long press.
		if ev.Type == types.ButtonReleased {
			c.setMode(types.ModeRunningBrightnessAdjust)
		}

	case types.ModeRunningBrightnessAdjust:
		switch ev.Type {
		case types.ButtonReleased:
			if ev.Releases == 1 {
				c.bumpBrightness(int(types.BrightnessStep))
			} else {
				c.bumpBrightness(-int(types.BrightnessStep))
			}
		case types.ButtonLongPressed:
			c.store.WriteByteIfChanged(brightnessAddr, c.brightness)
			c.publishBrightness(true)
			c.clearStrip()
			c.setMode(types.ModeEnteringAnimationFromLongPress)
		}

	case types.ModeEnteringAnimationFromLongPress:
		// Debounce state absorbing the release that ends the long press.
		if ev.Type == types.ButtonReleased {
			c.setMode(types.ModeRunningAnimation)
		}

	case types.ModeRunningFlashlight:
		if ev.Type == types.ButtonReleased {
			c.strip.SetBrightness(c.brightness)
			c.clearStrip()
			c.setMode(types.ModeRunningAnimation)
		}
	}
}

// enterBrightnessAdjust paints the adjustment display and waits for the
// release that ends the long press before reacting to anything else.
func (c *Controller) enterBrightnessAdjust() {
	c.showMarker()
	c.setMode(types.ModeEnteringBrightnessAdjust)
}

func (c *Controller) enterFlashlight() {
	c.strip.SetBrightness(types.BrightnessFlashlight)
	c.strip.Fill(fillWhite)
	c.strip.Flush()
	c.setMode(types.ModeRunningFlashlight)
}

// bumpBrightness steps by delta with wraparound: above the maximum wraps
// to the minimum and below the minimum wraps to the maximum.
func (c *Controller) bumpBrightness(delta int) {
	b := int(c.brightness) + delta
	switch {
	case b > int(types.BrightnessMax):
		b = int(types.BrightnessMin)
	case b < int(types.BrightnessMin):
		b = int(types.BrightnessMax)
	}
	c.brightness = uint8(b)
	c.strip.SetBrightness(c.brightness)
	c.publishBrightness(false)
	c.showMarker()
}

// showMarker paints the full strip white with a red marker pixel at a
// position proportional to the current brightness. The index is clamped
// defensively: the formula bottoms out below zero at the minimum setting
// on shorter strips.
func (c *Controller) showMarker() {
	c.strip.Fill(fillWhite)
	c.strip.SetPixel(c.markerIndex(), markerRed)
	c.strip.Flush()
}

func (c *Controller) markerIndex() int {
	i := int(c.brightness/types.BrightnessStep) - 1
	return mathx.Clamp(i, 0, mathx.Min(markerSlots, c.strip.Len())-1)
}

func (c *Controller) clearStrip() {
	c.strip.Fill(fillBlack)
	c.strip.Flush()
}

func (c *Controller) setMode(m types.Mode) {
	c.mode = m
	c.publishMode()
}

// Telemetry is retained fire-and-forget state; the bus never blocks the
// publisher, so the core loop cannot stall here.

func (c *Controller) publishMode() {
	if c.conn == nil {
		return
	}
	c.conn.Publish(c.conn.NewMessage(
		bus.T("pendant", "mode"),
		types.ModeState{Mode: c.mode.String(), Animation: c.runner.Index()},
		true,
	))
}

func (c *Controller) publishBrightness(persisted bool) {
	if c.conn == nil {
		return
	}
	c.conn.Publish(c.conn.NewMessage(
		bus.T("pendant", "brightness"),
		types.BrightnessState{Brightness: c.brightness, Persisted: persisted},
		true,
	))
}
