// services/sensors/internal/sources/open.go
package sources

import (
	"devicehal-go/services/config"
	"devicehal-go/services/sensors/internal/core"

	"github.com/rs/zerolog"
)

// Open locates the input device of every driver and returns the sources
// in multiplexer slot order. A device that cannot be opened is logged and
// replaced by an Absent source so the remaining sensors keep working.
func Open(paths config.SensorPaths, log zerolog.Logger) [core.NumSlots]core.Source {
	type ctor func(eventReader, attrDir, zerolog.Logger) core.Source
	specs := [core.NumSlots]struct {
		name string
		mk   ctor
	}{
		core.SlotLight:     {paths.Light, func(r eventReader, a attrDir, l zerolog.Logger) core.Source { return newLight(r, a, l) }},
		core.SlotProximity: {paths.Proximity, func(r eventReader, a attrDir, l zerolog.Logger) core.Source { return newProximity(r, a, l) }},
		core.SlotAkm:       {paths.Akm, func(r eventReader, a attrDir, l zerolog.Logger) core.Source { return newAkm(r, a, l) }},
		core.SlotGyro:      {paths.Gyro, func(r eventReader, a attrDir, l zerolog.Logger) core.Source { return newGyro(r, a, l) }},
	}

	var out [core.NumSlots]core.Source
	for slot, sp := range specs {
		in, err := openInput(paths.InputGlob, sp.name)
		if err != nil {
			log.Warn().Err(err).
				Str("slot", core.Slot(slot).String()).
				Str("device", sp.name).
				Msg("input device unavailable")
			out[slot] = Absent{Name: sp.name}
			continue
		}
		out[slot] = sp.mk(in, attrDir(in.sysfsDir(paths.SysfsInput)), log)
	}
	return out
}
