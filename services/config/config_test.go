package config

import (
	"context"
	"testing"
	"time"

	"pendant-go/bus"
	"pendant-go/errcode"
	"pendant-go/types"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pendant" {
			return nil, false
		}
		return []byte(`{
			"pendant": {"led_count": 13},
			"heartbeat": {"interval": 2}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pendant")
	svc.Start(ctx, conn)

	// Subscribe; retained messages should arrive regardless of ordering
	// between Start's goroutine and this subscription.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))

	wantCount := 2 // pendant, heartbeat
	got := map[string]any{}

	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < wantCount && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() < 2 {
				t.Fatalf("unexpected topic length: %#v", m.Topic)
			}
			key, ok := m.Topic.At(1).(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic.At(1))
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != wantCount {
		t.Fatalf("expected %d retained messages, got %d (%v)", wantCount, len(got), got)
	}

	m, ok := got["pendant"].(map[string]any)
	if !ok {
		t.Fatalf("pendant payload type = %T, want map[string]any", got["pendant"])
	}
	if n, ok := m["led_count"].(float64); !ok || n != 13 {
		t.Fatalf("led_count = %#v, want 13", m["led_count"])
	}
}

func TestConfig_PublishConfig_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewService()

	// No device ID in context.
	err := svc.publishConfig(context.Background(), conn)
	if errcode.Of(err) != errcode.UnknownDevice {
		t.Fatalf("expected unknown_device, got %v", err)
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "unknown-device")
	if err := svc.publishConfig(ctx, conn); errcode.Of(err) != errcode.UnknownDevice {
		t.Fatalf("expected unknown_device, got %v", err)
	}
}

func TestPendant_DecodesAndDefaults(t *testing.T) {
	c, err := Pendant(map[string]any{
		"led_count":  float64(24),
		"strip_pin":  float64(16),
		"button_pin": float64(15),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LEDCount != 24 || c.StripPin != 16 || c.ButtonPin != 15 {
		t.Fatalf("decoded config = %+v", c)
	}
	// Omitted timings come back as defaults.
	if c.LongPressMs != types.DefaultLongPressMs || c.GroupWindowMs != types.DefaultGroupWindowMs {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestPendant_RejectsNonObject(t *testing.T) {
	c, err := Pendant("nonsense")
	if errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	// Even on error the returned config is usable.
	if c.LEDCount != types.DefaultLEDCount {
		t.Fatalf("fallback config = %+v", c)
	}
}
