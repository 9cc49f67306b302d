package types

// LightID names a light at the host boundary.
type LightID string

const (
	LightBacklight     LightID = "backlight"
	LightKeyboard      LightID = "keyboard"
	LightButtons       LightID = "buttons"
	LightBattery       LightID = "battery"
	LightNotifications LightID = "notifications"
)

// FlashMode selects how a light blinks.
type FlashMode int32

const (
	FlashNone     FlashMode = 0
	FlashTimed    FlashMode = 1
	FlashHardware FlashMode = 2
)

func (m FlashMode) String() string {
	switch m {
	case FlashTimed:
		return "timed"
	case FlashHardware:
		return "hardware"
	default:
		return "none"
	}
}

// LightState is one set-light request. Color is 0xAARRGGBB; alpha is ignored.
type LightState struct {
	Color      uint32
	FlashMode  FlashMode
	FlashOnMS  int32
	FlashOffMS int32
}

// RGB returns the color with alpha stripped.
func (s LightState) RGB() uint32 { return s.Color & 0x00ffffff }

// Lit reports whether any color channel is non-zero.
func (s LightState) Lit() bool { return s.RGB() != 0 }
