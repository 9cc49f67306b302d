// services/sensors/internal/core/source.go
package core

import "devicehal-go/types"

// Slot is a driver source's fixed position in the multiplexer. The order
// is also the drain priority within one Poll call.
type Slot int

const (
	SlotLight Slot = iota
	SlotProximity
	SlotAkm
	SlotGyro

	NumSlots
)

func (s Slot) String() string {
	switch s {
	case SlotLight:
		return "light"
	case SlotProximity:
		return "proximity"
	case SlotAkm:
		return "akm"
	case SlotGyro:
		return "gyro"
	default:
		return "invalid"
	}
}

// Source is one physical sensor driver as seen by the multiplexer.
//
// Fd is a descriptor that polls readable when the driver has input; a
// negative Fd is never reported ready. ReadEvents fills at most len(dst)
// events and may return fewer; HasPendingEvents reports events already
// decoded and buffered inside the driver, which must be drained without
// waiting for Fd. Enablement is the driver's own state: the multiplexer
// only forwards requests and trusts the returned error.
//
// Enable, SetDelay, Batch and Flush may be called from a different
// goroutine than ReadEvents and HasPendingEvents; implementations guard
// their own state.
type Source interface {
	Fd() int
	Enable(h types.Handle, enabled bool) error
	SetDelay(h types.Handle, ns int64) error
	Batch(h types.Handle, flags int, periodNs, latencyNs int64) error
	Flush(h types.Handle) error
	ReadEvents(dst []types.Event) (int, error)
	HasPendingEvents() bool
	Close() error
}
