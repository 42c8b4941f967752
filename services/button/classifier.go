// Package button converts raw electrical transitions on the pushbutton
// into semantic events: press, long-press, and release-with-count. The
// ISR half (EdgeLatch) only latches a flag and a timestamp; debounce and
// gesture classification run polled in the main loop, so interrupt
// latency stays minimal while multi-tap detection stays robust.
package button

import (
	"pendant-go/hw"
	"pendant-go/types"
	"pendant-go/x/timex"
)

const debounceSamples = 3 // consecutive agreeing 1ms samples

// Classifier owns the input state machine. It is not goroutine safe; Poll
// is called from the single cooperative loop only.
type Classifier struct {
	pin   hw.InputPin
	clk   hw.Clock
	latch *EdgeLatch

	longPressMs   uint32
	groupWindowMs uint32
	budgetMs      uint32

	// pressed is the debounced stored level.
	pressed bool

	// pressStartMs is valid iff pressActive: a press is underway and has
	// not yet resolved into a long-press.
	pressStartMs uint32
	pressActive  bool

	// releases > 0 iff a release-grouping window is open, anchored at
	// lastReleaseMs.
	releases      uint8
	lastReleaseMs uint32
}

// New builds a classifier around the raw pin, the clock, and the ISR
// latch. cfg supplies the gesture thresholds.
func New(pin hw.InputPin, clk hw.Clock, latch *EdgeLatch, cfg types.Config) *Classifier {
	cfg = cfg.Normalized()
	return &Classifier{
		pin:           pin,
		clk:           clk,
		latch:         latch,
		longPressMs:   cfg.LongPressMs,
		groupWindowMs: cfg.GroupWindowMs,
		budgetMs:      cfg.DebounceBudget,
	}
}

// Poll returns at most one pending event. It blocks only for the debounce
// window, bounded by the configured budget (~3ms).
func (c *Classifier) Poll() types.ButtonEvent {
	if ts, ok := c.latch.Take(); ok {
		return c.classifyEdge(ts)
	}

	now := c.clk.NowMillis()

	// One-shot long-press: fires once per press, then drops the press
	// anchor so it cannot fire again until the next press edge.
	if c.pressActive && timex.Reached(now, c.pressStartMs, c.longPressMs) {
		c.pressActive = false
		return types.ButtonEvent{Type: types.ButtonLongPressed}
	}

	// A grouping window that has gone silent resolves into one Released
	// event carrying the accumulated count.
	if c.releases > 0 && timex.Reached(now, c.lastReleaseMs, c.groupWindowMs) {
		n := c.releases
		c.releases = 0
		return types.ButtonEvent{Type: types.ButtonReleased, Releases: n}
	}

	return types.ButtonEvent{}
}

// classifyEdge debounces the pin after an ISR-latched transition and
// updates the press/release state machine.
func (c *Classifier) classifyEdge(ts uint32) types.ButtonEvent {
	level, ok := c.debouncedLevel()
	if !ok {
		// Pin still bouncing past the budget. Re-arm and re-evaluate
		// from scratch on the next poll rather than trusting a noisy
		// sample.
		c.latch.Note(c.clk.NowMillis())
		return types.ButtonEvent{}
	}

	if level == c.pressed {
		// Glitch: the latched edge cancelled itself out.
		return types.ButtonEvent{}
	}
	c.pressed = level

	if level {
		// Press-start time is the latched interrupt timestamp, not the
		// (later) debounce completion time.
		c.pressStartMs = ts
		c.pressActive = true
		return types.ButtonEvent{Type: types.ButtonPressed}
	}

	// Release. Group with the previous release when inside the window,
	// otherwise start a fresh group. No event yet: single vs. double is
	// only knowable after the window falls silent.
	now := c.clk.NowMillis()
	if c.releases > 0 && timex.Elapsed(now, c.lastReleaseMs) < c.groupWindowMs {
		c.releases++
	} else {
		c.releases = 1
	}
	c.lastReleaseMs = now
	c.pressActive = false
	return types.ButtonEvent{}
}

// debouncedLevel samples the pin every 1ms until debounceSamples
// consecutive reads agree, giving up once the budget is spent.
func (c *Classifier) debouncedLevel() (level, ok bool) {
	level = c.pin.Pressed()
	agree := 1
	for i := uint32(0); i < c.budgetMs; i++ {
		c.clk.SleepMillis(1)
		s := c.pin.Pressed()
		if s == level {
			agree++
		} else {
			level, agree = s, 1
		}
		if agree >= debounceSamples {
			return level, true
		}
	}
	return false, false
}
