package types

// Config carries the tunable parameters of the pendant. The device build
// assembles it from the embedded config service; the simulator maps its
// YAML file onto it. Zero values are replaced by the defaults below.
type Config struct {
	LEDCount int `json:"led_count"`
	// ButtonPin is the MCU pin number of the pushbutton (device build only).
	ButtonPin int `json:"button_pin"`
	// StripPin is the MCU pin number of the WS2812 data line.
	StripPin int `json:"strip_pin"`

	LongPressMs    uint32 `json:"long_press_ms"`
	GroupWindowMs  uint32 `json:"group_window_ms"`
	DebounceBudget uint32 `json:"debounce_budget_ms"`
}

// Defaults for anything left at its zero value.
const (
	DefaultLEDCount       = 13
	DefaultLongPressMs    = 2000
	DefaultGroupWindowMs  = 250
	DefaultDebounceBudget = 3
)

// Normalized returns a copy with zero fields replaced by defaults.
func (c Config) Normalized() Config {
	if c.LEDCount <= 0 {
		c.LEDCount = DefaultLEDCount
	}
	if c.LongPressMs == 0 {
		c.LongPressMs = DefaultLongPressMs
	}
	if c.GroupWindowMs == 0 {
		c.GroupWindowMs = DefaultGroupWindowMs
	}
	if c.DebounceBudget == 0 {
		c.DebounceBudget = DefaultDebounceBudget
	}
	return c
}
