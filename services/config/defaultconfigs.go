package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgPendant = `{
  "pendant": {
      "led_count": 13,
      "button_pin": 15,
      "strip_pin": 16,
      "long_press_ms": 2000,
      "group_window_ms": 250,
      "debounce_budget_ms": 3
  },
  "heartbeat": {
      "interval": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	"pendant": []byte(cfgPendant),
}
