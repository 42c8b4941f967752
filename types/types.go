package types

// ---- Button events ----

// ButtonEventType classifies what the input state machine observed.
type ButtonEventType uint8

const (
	// ButtonNone means nothing happened this poll.
	ButtonNone ButtonEventType = iota
	// ButtonPressed is emitted on a debounced not-pressed -> pressed edge.
	ButtonPressed
	// ButtonLongPressed fires once per press once the hold threshold elapses.
	ButtonLongPressed
	// ButtonReleased is emitted after the release-grouping window falls
	// silent; Releases carries how many releases were grouped.
	ButtonReleased
)

func (t ButtonEventType) String() string {
	switch t {
	case ButtonNone:
		return "none"
	case ButtonPressed:
		return "pressed"
	case ButtonLongPressed:
		return "long_pressed"
	case ButtonReleased:
		return "released"
	default:
		return "?"
	}
}

// ButtonEvent is produced by the classifier and consumed within the same
// loop iteration. It is never stored.
type ButtonEvent struct {
	Type     ButtonEventType
	Releases uint8 // valid for ButtonReleased only
}

// ---- Top-level mode ----

// Mode is the top-level controller state. Exactly one is current;
// transitions are edge-triggered by button events only.
type Mode uint8

const (
	ModeRunningAnimation Mode = iota
	ModeEnteringBrightnessAdjust
	ModeRunningBrightnessAdjust
	ModeEnteringAnimationFromLongPress
	ModeRunningFlashlight
)

func (m Mode) String() string {
	switch m {
	case ModeRunningAnimation:
		return "animation"
	case ModeEnteringBrightnessAdjust:
		return "entering_brightness"
	case ModeRunningBrightnessAdjust:
		return "brightness"
	case ModeEnteringAnimationFromLongPress:
		return "leaving_brightness"
	case ModeRunningFlashlight:
		return "flashlight"
	default:
		return "?"
	}
}

// ---- Brightness ----

const (
	// BrightnessMin..BrightnessMax bound the user-adjustable range.
	BrightnessMin  uint8 = 10
	BrightnessMax  uint8 = 100
	BrightnessStep uint8 = 10
	// BrightnessDefault applies when storage holds the unset sentinel.
	BrightnessDefault uint8 = 20
	// BrightnessFlashlight is the transient flashlight override; it is
	// never persisted.
	BrightnessFlashlight uint8 = 200
	// BrightnessUnset is the storage sentinel meaning "never written".
	BrightnessUnset byte = 255
)

// ---- Telemetry payloads (retained bus state) ----

type ModeState struct {
	Mode      string `json:"mode"`
	Animation int    `json:"animation"`
}

type BrightnessState struct {
	Brightness uint8 `json:"brightness"`
	Persisted  bool  `json:"persisted"`
}
