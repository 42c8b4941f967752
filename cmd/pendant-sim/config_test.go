package main

import (
	"os"
	"path/filepath"
	"testing"

	"pendant-go/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSimConfig_OverridesKeepDefaults(t *testing.T) {
	cfg, err := LoadSimConfig(writeConfig(t, "led_count: 24\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LEDCount != 24 {
		t.Fatalf("led_count = %d, want 24", cfg.LEDCount)
	}
	if cfg.LongPressMs != types.DefaultLongPressMs {
		t.Fatalf("long_press_ms = %d, want default", cfg.LongPressMs)
	}
}

func TestLoadSimConfig_RejectsUnknownField(t *testing.T) {
	if _, err := LoadSimConfig(writeConfig(t, "led_cuont: 24\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSimConfig_ValidatesTimingOrder(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.LongPressMs = 100
	cfg.GroupWindowMs = 250
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when long press is shorter than the group window")
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	s := newFileStore(path)
	if got := s.ReadByte(0); got != 0xFF {
		t.Fatalf("fresh store should read 0xFF, got %#x", got)
	}
	s.WriteByteIfChanged(0, 40)

	s2 := newFileStore(path)
	if got := s2.ReadByte(0); got != 40 {
		t.Fatalf("reloaded store read %d, want 40", got)
	}
}
