package sources

import (
	"devicehal-go/services/sensors/internal/halerr"
	"devicehal-go/types"
)

// Absent stands in for a driver whose input device was not found. Its fd
// is never ready; disabling succeeds, everything else reports no device.
type Absent struct{ Name string }

func (Absent) Fd() int { return -1 }

func (Absent) Enable(_ types.Handle, enabled bool) error {
	if enabled {
		return halerr.ErrNoDevice
	}
	return nil
}

func (Absent) SetDelay(types.Handle, int64) error          { return halerr.ErrNoDevice }
func (Absent) Batch(types.Handle, int, int64, int64) error { return halerr.ErrNoDevice }
func (Absent) Flush(types.Handle) error                    { return halerr.ErrNoDevice }
func (Absent) ReadEvents([]types.Event) (int, error)       { return 0, nil }
func (Absent) HasPendingEvents() bool                      { return false }
func (Absent) Close() error                                { return nil }
