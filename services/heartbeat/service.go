package heartbeat

import (
	"context"
	"time"

	"pendant-go/bus"
	"pendant-go/types"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicPendantState    = bus.T("pendant", "#")
)

// Service logs a periodic one-line status over the serial console. It
// tracks the retained pendant state so the line reflects the latest mode
// and brightness without polling anything.
type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stateSub := conn.Subscribe(topicPendantState)
	defer conn.Unsubscribe(stateSub)

	mode := "?"
	animation := 0
	brightness := 0

	tick := time.NewTicker(5 * time.Second)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and state changes
	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case <-tick.C:
			println("Info: heartbeat mode:", mode, "animation:", animation, "brightness:", brightness)
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval"].(float64); ok && iv > 0 {
					tick.Reset(time.Duration(iv) * time.Second)
					println("Info: heartbeat interval set to", int(iv), "seconds")
				}
			}
		case msg := <-stateSub.Channel():
			switch p := msg.Payload.(type) {
			case types.ModeState:
				mode = p.Mode
				animation = p.Animation
			case types.BrightnessState:
				brightness = int(p.Brightness)
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
