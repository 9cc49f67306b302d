// services/lights/lights.go
package lights

import (
	"devicehal-go/errcode"
	"devicehal-go/services/config"
	"devicehal-go/types"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ModuleInfo identifies the module to the host.
type ModuleInfo struct {
	ID     string
	Name   string
	Author string
}

// Module hands out one Light per host light name. All lights share one
// Actuator, so requests to different lights are serialised too.
type Module struct {
	act *Actuator
}

// NewModule builds the lights module. A nil logger selects the global one.
func NewModule(paths config.LightPaths, lg *zerolog.Logger) *Module {
	l := log.Logger
	if lg != nil {
		l = *lg
	}
	return &Module{act: NewActuator(paths, l)}
}

func (m *Module) Info() ModuleInfo {
	return ModuleInfo{ID: "lights", Name: "lights Module", Author: "The CyanogenMod Project"}
}

// Open returns the light named name, or an EINVAL error for names the
// hardware does not have.
func (m *Module) Open(name string) (*Light, error) {
	id := types.LightID(name)
	switch id {
	case types.LightBacklight, types.LightKeyboard, types.LightButtons,
		types.LightBattery, types.LightNotifications:
		m.act.log.Debug().Str("light", name).Msg("open")
		return &Light{id: id, act: m.act}, nil
	}
	return nil, errUnknownLight
}

// OpenABI is Open with the host's status convention.
func (m *Module) OpenABI(name string) (*Light, int) {
	l, err := m.Open(name)
	return l, errcode.Errno(err)
}

// Light is one opened light device.
type Light struct {
	id  types.LightID
	act *Actuator
}

func (l *Light) ID() types.LightID { return l.id }

// SetLight applies st and returns 0 or a negated errno.
func (l *Light) SetLight(st types.LightState) int {
	return errcode.Errno(l.act.Set(l.id, st))
}

// Close releases the device. Nothing is held open between requests.
func (l *Light) Close() int { return 0 }
