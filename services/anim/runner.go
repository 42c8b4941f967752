// Package anim advances one active animation at its own frame rate and
// composes pixel buffers. Advance never sleeps: called before the frame
// interval elapses it is a no-op, so the input path is never starved no
// matter how fast or slow the main loop iterates.
package anim

import (
	"pendant-go/hw"
	"pendant-go/x/timex"
)

// RunState tracks the runner lifecycle.
type RunState uint8

const (
	StateUndefined RunState = iota
	StateInitialized
	StateRunning
)

// Runner owns the animation context: the active animation, its frame
// delay, the 8-bit wrapping frame index, and the render clock. Mutated
// only from the cooperative main loop.
type Runner struct {
	strip hw.PixelStrip
	clk   hw.Clock
	seq   []Animation

	state   RunState
	idx     int
	frame   uint8
	delayMs uint32
	lastMs  uint32
}

// NewRunner builds a runner over the fixed animation sequence. The
// context stays Undefined until first use.
func NewRunner(strip hw.PixelStrip, clk hw.Clock, seq []Animation) *Runner {
	return &Runner{strip: strip, clk: clk, seq: seq}
}

func (r *Runner) ensureInit() {
	if r.state == StateUndefined {
		r.idx = 0
		r.delayMs = r.seq[0].Delay()
		r.state = StateInitialized
	}
}

// Advance renders at most one frame. On the first call after
// (re)initialization it zeroes the frame counter and the animation's
// scratch, then renders immediately; afterwards it renders only once the
// frame delay has elapsed.
func (r *Runner) Advance() {
	r.ensureInit()
	now := r.clk.NowMillis()

	if r.state == StateInitialized {
		r.seq[r.idx].Reset()
		r.frame = 0
		r.state = StateRunning
		r.lastMs = now - r.delayMs // render this frame now
	}

	if !timex.Reached(now, r.lastMs, r.delayMs) {
		return
	}

	r.seq[r.idx].Step(r.frame, r.strip)
	r.strip.Flush()
	r.frame++ // wraps at 256
	r.lastMs = now
}

// TransitionToNext switches to the next animation in the fixed order,
// wrapping past the end, and adopts its frame delay. The scratch reset is
// deferred to the next Advance.
func (r *Runner) TransitionToNext() {
	r.ensureInit()
	r.idx = (r.idx + 1) % len(r.seq)
	r.delayMs = r.seq[r.idx].Delay()
	r.state = StateInitialized
}

// Index returns the position of the active animation in the sequence.
func (r *Runner) Index() int { return r.idx }

// Name returns the active animation's name, for telemetry.
func (r *Runner) Name() string {
	r.ensureInit()
	return r.seq[r.idx].Name()
}

// State exposes the lifecycle state.
func (r *Runner) State() RunState { return r.state }
