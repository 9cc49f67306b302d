// services/sensors/internal/halerr/errors.go
package halerr

import (
	"devicehal-go/errcode"

	"golang.org/x/sys/unix"
)

var (
	// Routing
	ErrInvalidHandle = errcode.InvalidHandle

	// Driver sources
	ErrNoDevice     = &errcode.E{C: errcode.NoDevice, Msg: "input device not present", Err: unix.ENODEV}
	ErrNotEnabled   = &errcode.E{C: errcode.Driver, Msg: "sensor not enabled", Err: unix.EINVAL}
	ErrOneShotFlush = &errcode.E{C: errcode.Driver, Msg: "flush of one-shot sensor", Err: unix.EINVAL}
)
