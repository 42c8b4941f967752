package config

import (
	"context"

	"pendant-go/bus"
	"pendant-go/errcode"
	"pendant-go/types"

	"github.com/andreyvit/tinyjson"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type Service struct {
	Name string
}

func NewService() *Service {
	return &Service{Name: serviceName}
}

// publishConfig reads the device config from embedded data and publishes
// each top-level key as a retained message under config/<key>.
func (s *Service) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errcode.UnknownDevice
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errcode.UnknownDevice
	}

	r := tinyjson.Raw(raw)
	val := r.Value() // should be a map[string]any
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return errcode.InvalidConfig
	}

	for k, v := range m {
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		})
	}

	return nil
}

// Start launches the config publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("Error: config:", errcode.Of(err).Error())
		}
	}()
}

// -----------------------------------------------------------------------------
// Typed decoding
// -----------------------------------------------------------------------------

// Pendant maps the payload published under config/pendant onto a typed
// Config. Missing or mistyped fields keep their zero value and fall back
// to the defaults via Normalized.
func Pendant(payload any) (types.Config, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return types.Config{}.Normalized(), errcode.InvalidConfig
	}
	var c types.Config
	c.LEDCount = intField(m, "led_count")
	c.ButtonPin = intField(m, "button_pin")
	c.StripPin = intField(m, "strip_pin")
	c.LongPressMs = uint32(intField(m, "long_press_ms"))
	c.GroupWindowMs = uint32(intField(m, "group_window_ms"))
	c.DebounceBudget = uint32(intField(m, "debounce_budget_ms"))
	return c.Normalized(), nil
}

// intField tolerates the numeric types the JSON decoder may hand back.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
