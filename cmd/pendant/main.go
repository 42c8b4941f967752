//go:build tinygo

package main

import (
	"context"
	"machine"
	"time"

	"pendant-go/bus"
	"pendant-go/drivers/flashstore"
	"pendant-go/drivers/neopixel"
	"pendant-go/services/anim"
	"pendant-go/services/button"
	"pendant-go/services/config"
	"pendant-go/services/heartbeat"
	"pendant-go/services/mode"
	"pendant-go/types"
)

// boardClock maps the runtime's monotonic time onto the 32-bit
// millisecond clock the core runs on. It wraps after ~49.7 days; all
// comparisons in the core use unsigned subtraction, so that is fine.
type boardClock struct {
	start time.Time
}

func (c *boardClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *boardClock) SleepMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// buttonPin reads the active-low pushbutton.
type buttonPin struct {
	pin machine.Pin
}

func (b buttonPin) Pressed() bool { return !b.pin.Get() }

// fetchConfig waits briefly for the retained device config; on timeout it
// runs with the defaults.
func fetchConfig(conn *bus.Connection) types.Config {
	sub := conn.Subscribe(bus.T("config", "pendant"))
	defer conn.Unsubscribe(sub)

	select {
	case msg := <-sub.Channel():
		cfg, err := config.Pendant(msg.Payload)
		if err != nil {
			println("Error: main: bad device config, using defaults")
		}
		return cfg
	case <-time.After(500 * time.Millisecond):
		println("Info: main: no device config, using defaults")
		return types.Config{}.Normalized()
	}
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "pendant")
	b := bus.NewBus(16)

	config.NewService().Start(ctx, b.NewConnection("config"))
	if err := (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("Error: main: heartbeat:", err.Error())
	}

	mainConn := b.NewConnection("main")
	cfg := fetchConfig(mainConn)

	clk := &boardClock{start: time.Now()}
	strip := neopixel.New(machine.Pin(cfg.StripPin), cfg.LEDCount)
	store := flashstore.New()

	// The ISR only latches the edge timestamp; all classification happens
	// in the main loop.
	latch := &button.EdgeLatch{}
	pin := machine.Pin(cfg.ButtonPin)
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pin.SetInterrupt(machine.PinRising|machine.PinFalling, func(machine.Pin) {
		latch.Note(clk.NowMillis())
	}); err != nil {
		println("Error: main: button IRQ:", err.Error())
	}

	cls := button.New(buttonPin{pin: pin}, clk, latch, cfg)
	runner := anim.NewRunner(strip, clk, anim.Sequence(anim.DefaultLayout()))
	ctrl := mode.NewController(strip, store, runner, mainConn)

	for {
		ctrl.Step(cls.Poll())
		clk.SleepMillis(1)
	}
}
