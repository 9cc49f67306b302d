// services/sensors/internal/core/router.go
package core

import (
	"devicehal-go/services/sensors/internal/halerr"
	"devicehal-go/types"
)

// routes is the fixed handle → slot table. The accelerometer, magnetic
// field, orientation and significant-motion handles all belong to the
// composite akm driver.
var routes = map[types.Handle]Slot{
	types.HandleAccelerometer:     SlotAkm,
	types.HandleMagneticField:     SlotAkm,
	types.HandleOrientation:       SlotAkm,
	types.HandleSignificantMotion: SlotAkm,
	types.HandleProximity:         SlotProximity,
	types.HandleLight:             SlotLight,
	types.HandleGyroscope:         SlotGyro,
}

// Route resolves a handle to its driver slot.
func Route(h types.Handle) (Slot, error) {
	s, ok := routes[h]
	if !ok {
		return -1, halerr.ErrInvalidHandle
	}
	return s, nil
}
