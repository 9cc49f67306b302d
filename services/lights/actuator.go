// services/lights/actuator.go
package lights

import (
	"os"
	"strconv"
	"sync"

	"devicehal-go/errcode"
	"devicehal-go/services/config"
	"devicehal-go/types"
	"devicehal-go/x/mathx"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// maxFlashMS bounds each half of the blink interval written to the driver.
const maxFlashMS = 9999

// Actuator turns light requests into writes on the sysfs control files.
// All requests are serialised by one mutex.
type Actuator struct {
	paths config.LightPaths
	log   zerolog.Logger

	capsOnce     sync.Once
	blinkSupport bool
	rateSupport  bool

	mu     sync.Mutex
	warned map[string]bool
}

// NewActuator builds an actuator over paths.
func NewActuator(paths config.LightPaths, log zerolog.Logger) *Actuator {
	return &Actuator{
		paths:  paths,
		log:    log.With().Str("component", "lights").Logger(),
		warned: make(map[string]bool),
	}
}

// probe checks once which optional notification controls are writable.
func (a *Actuator) probe() {
	a.capsOnce.Do(func() {
		a.blinkSupport = writable(a.paths.NotificationBlink)
		a.rateSupport = writable(a.paths.NotificationBlinkRate)
		a.log.Debug().
			Bool("blink", a.blinkSupport).
			Bool("blink_rate", a.rateSupport).
			Msg("notification capabilities")
	})
}

func writable(path string) bool {
	return path != "" && unix.Access(path, unix.W_OK) == nil
}

// Set applies st to the light id.
func (a *Actuator) Set(id types.LightID, st types.LightState) error {
	switch id {
	case types.LightBacklight:
		return a.setBacklight(st)
	case types.LightButtons:
		return a.setButtons(st)
	case types.LightNotifications:
		return a.setNotifications(st)
	case types.LightKeyboard, types.LightBattery:
		return nil
	default:
		return errUnknownLight
	}
}

var errUnknownLight = &errcode.E{C: errcode.Unsupported, Msg: "unknown light", Err: unix.EINVAL}

// Brightness is the perceptual luma of the color, 0..255.
func Brightness(color uint32) int {
	c := color & 0x00ffffff
	r, g, b := int(c>>16&0xff), int(c>>8&0xff), int(c&0xff)
	return (77*r + 150*g + 29*b) >> 8
}

func (a *Actuator) setBacklight(st types.LightState) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writeInt(a.paths.LCD, Brightness(st.Color))
}

func (a *Actuator) setButtons(st types.LightState) error {
	v := 2
	if st.Lit() {
		v = 1
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.touchlightEnabled() {
		a.log.Debug().Msg("touch key light disabled by preference")
		return nil
	}
	return a.writeInt(a.paths.Buttons, v)
}

// touchlightEnabled reads the preference flag file. A missing or unreadable
// file leaves the lights enabled; a first byte of '1' disables them.
func (a *Actuator) touchlightEnabled() bool {
	if a.paths.DisableTouchlight == "" {
		return true
	}
	f, err := os.Open(a.paths.DisableTouchlight)
	if err != nil {
		return true
	}
	defer f.Close()
	var b [1]byte
	if n, _ := f.Read(b[:]); n == 1 && b[0] == '1' {
		return false
	}
	return true
}

func (a *Actuator) setNotifications(st types.LightState) error {
	a.probe()
	lit := st.Lit()
	a.log.Debug().
		Str("color", "#"+strconv.FormatUint(uint64(st.Color), 16)).
		Bool("lit", lit).
		Stringer("flash", st.FlashMode).
		Int32("on_ms", st.FlashOnMS).
		Int32("off_ms", st.FlashOffMS).
		Msg("set notification")

	a.mu.Lock()
	defer a.mu.Unlock()
	on := 0
	if lit {
		on = 1
	}
	err := a.writeInt(a.paths.Notification, on)
	if !a.blinkSupport || !lit || st.FlashMode == types.FlashNone {
		return err
	}
	if a.rateSupport {
		onMS := mathx.Clamp(st.FlashOnMS, 0, maxFlashMS)
		offMS := mathx.Clamp(st.FlashOffMS, 0, maxFlashMS)
		rate := strconv.Itoa(int(onMS)) + " " + strconv.Itoa(int(offMS)) + "\n"
		if err := a.writeStr(a.paths.NotificationBlinkRate, rate); err != nil {
			a.log.Debug().Err(err).Msg("blink interval not applied")
		}
	}
	return a.writeInt(a.paths.NotificationBlink, on)
}
