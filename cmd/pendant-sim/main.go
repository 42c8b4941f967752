// Command pendant-sim runs the pendant firmware on the host with a
// terminal front end: the LED ring renders as colored cells and the
// keyboard stands in for the pushbutton.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"pendant-go/bus"
	"pendant-go/services/anim"
	"pendant-go/services/button"
	"pendant-go/services/mode"
	"pendant-go/types"
)

const frameDelay = time.Millisecond

// gestureEdge is a scheduled button transition, so a single keypress can
// play back a tap or a double tap.
type gestureEdge struct {
	atMs  uint32
	level bool
}

type simulator struct {
	screen tcell.Screen
	cfg    SimConfig

	clk    *simClock
	strip  *simStrip
	pin    *simPin
	latch  *button.EdgeLatch
	cls    *button.Classifier
	runner *anim.Runner
	ctrl   *mode.Controller

	stateSub *bus.Subscription
	lastMode types.ModeState
	lastBr   types.BrightnessState

	pending []gestureEdge
	frame   []color.RGBA

	events   chan tcell.Event
	pollDone chan struct{}
}

func newSimulator(cfg SimConfig) (*simulator, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	s := &simulator{
		screen:   screen,
		cfg:      cfg,
		clk:      &simClock{start: time.Now()},
		strip:    newSimStrip(cfg.LEDCount),
		pin:      &simPin{},
		latch:    &button.EdgeLatch{},
		frame:    make([]color.RGBA, cfg.LEDCount),
		events:   make(chan tcell.Event, 10),
		pollDone: make(chan struct{}),
	}

	s.cls = button.New(s.pin, s.clk, s.latch, cfg.ToConfig())
	s.runner = anim.NewRunner(s.strip, s.clk, anim.Sequence(anim.DefaultLayout()))

	b := bus.NewBus(16)
	conn := b.NewConnection("sim")
	s.stateSub = conn.Subscribe(bus.T("pendant", "#"))
	s.ctrl = mode.NewController(s.strip, newFileStore(cfg.StorePath), s.runner, conn)

	return s, nil
}

func (s *simulator) close() {
	s.screen.Fini()
	select {
	case <-s.pollDone:
	case <-time.After(100 * time.Millisecond):
	}
}

func (s *simulator) run() error {
	s.screen.Clear()
	s.screen.HideCursor()

	go s.pollEvents()

	for {
		if done := s.processEvents(); done {
			return nil
		}
		s.applyPending()
		s.ctrl.Step(s.cls.Poll())
		s.drainState()
		s.render()
		time.Sleep(frameDelay)
	}
}

// pollEvents reads events until the screen is finalized; Fini makes
// PollEvent return nil, ending this goroutine.
func (s *simulator) pollEvents() {
	defer close(s.pollDone)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.events <- ev
	}
}

func (s *simulator) processEvents() bool {
	for {
		select {
		case ev := <-s.events:
			if key, ok := ev.(*tcell.EventKey); ok && s.handleKey(key) {
				return true
			}
		default:
			return false
		}
	}
}

func (s *simulator) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			// Toggle hold; press space, wait, press space again for a
			// long press.
			s.setLevel(!s.pin.level)
		case 't':
			s.setLevel(true)
			s.schedule(60, false)
		case 'd':
			s.setLevel(true)
			s.schedule(60, false)
			s.schedule(120, true)
			s.schedule(180, false)
		}
	}
	return false
}

// setLevel applies a button transition now, exactly as the ISR would.
func (s *simulator) setLevel(level bool) {
	if s.pin.level == level {
		return
	}
	s.pin.level = level
	s.latch.Note(s.clk.NowMillis())
}

func (s *simulator) schedule(inMs uint32, level bool) {
	s.pending = append(s.pending, gestureEdge{atMs: s.clk.NowMillis() + inMs, level: level})
}

func (s *simulator) applyPending() {
	now := s.clk.NowMillis()
	kept := s.pending[:0]
	for _, e := range s.pending {
		if now >= e.atMs {
			s.setLevel(e.level)
		} else {
			kept = append(kept, e)
		}
	}
	s.pending = kept
}

func (s *simulator) drainState() {
	for {
		select {
		case msg := <-s.stateSub.Channel():
			switch p := msg.Payload.(type) {
			case types.ModeState:
				s.lastMode = p
			case types.BrightnessState:
				s.lastBr = p
			}
		default:
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

func (s *simulator) render() {
	s.screen.Clear()
	s.strip.Snapshot(s.frame)

	w, h := s.screen.Size()
	if w < 10 || h < 8 {
		s.screen.Show()
		return
	}

	// A ring plus, on the default layout, one center pixel.
	n := len(s.frame)
	ring := n
	hasCenter := false
	if n == types.DefaultLEDCount {
		ring = n - 1
		hasCenter = true
	}

	cx, cy := w/2, (h-2)/2
	r := cy - 2
	if max := (w - 4) / 4; r > max {
		r = max
	}
	if r < 2 {
		r = 2
	}

	// Index 0 sits at the bottom and indices advance clockwise.
	for i := 0; i < ring; i++ {
		a := 2 * math.Pi * float64(i) / float64(ring)
		x := cx - int(math.Round(2*float64(r)*math.Sin(a)))
		y := cy + int(math.Round(float64(r)*math.Cos(a)))
		s.drawLED(x, y, s.frame[i])
	}
	if hasCenter {
		s.drawLED(cx, cy, s.frame[ring])
	}

	saved := ""
	if s.lastBr.Persisted {
		saved = " (saved)"
	}
	s.drawText(0, h-2, fmt.Sprintf("mode: %-20s animation: %-14s brightness: %d%s",
		s.lastMode.Mode, s.runner.Name(), s.lastBr.Brightness, saved))
	s.drawText(0, h-1, "space=hold/release  t=tap  d=double-tap  q=quit")

	s.screen.Show()
}

func (s *simulator) drawLED(x, y int, c color.RGBA) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	s.screen.SetContent(x, y, '●', nil, style)
}

func (s *simulator) drawText(x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// -----------------------------------------------------------------------------
// CLI
// -----------------------------------------------------------------------------

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when omitted)")
	flag.Parse()

	cfg := DefaultSimConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadSimConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := newSimulator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	if err := s.run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
