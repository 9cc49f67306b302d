// services/sensors/sensors.go
package sensors

import (
	"devicehal-go/errcode"
	"devicehal-go/services/config"
	"devicehal-go/services/sensors/internal/core"
	"devicehal-go/services/sensors/internal/sources"
	"devicehal-go/types"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ModuleInfo identifies the module to the host.
type ModuleInfo struct {
	ID           string
	Name         string
	Author       string
	VersionMajor uint16
	VersionMinor uint16
}

// DevicePoll is the device name hosts open to get the event stream.
const DevicePoll = "poll"

// PollDevice is the host-facing surface of an open sensor device. Every
// method returns 0 or a negated errno; Poll returns the event count.
type PollDevice interface {
	Activate(h types.Handle, enabled bool) int
	SetDelay(h types.Handle, ns int64) int
	Poll(buf []types.Event) int
	Batch(h types.Handle, flags int, periodNs, timeoutNs int64) int
	Flush(h types.Handle) int
	InjectSensorData(e *types.Event) int
	Close() int
}

// Module is the sensors entry point.
type Module struct {
	paths config.SensorPaths
	log   zerolog.Logger

	// openSources is replaced in tests.
	openSources func(config.SensorPaths, zerolog.Logger) [core.NumSlots]core.Source
	opts        core.Options
}

// NewModule returns a module that opens the input devices named in paths.
// A nil logger selects the global one.
func NewModule(paths config.SensorPaths, lg *zerolog.Logger) *Module {
	l := log.Logger
	if lg != nil {
		l = *lg
	}
	return &Module{paths: paths, log: l, openSources: sources.Open}
}

func (m *Module) Info() ModuleInfo {
	return ModuleInfo{
		ID:           "sensors",
		Name:         "Samsung Sensor module",
		Author:       "Samsung Electronic Company",
		VersionMajor: 1,
		VersionMinor: 0,
	}
}

// List returns a copy of the static sensor list.
func (m *Module) List() []types.SensorInfo {
	return append([]types.SensorInfo(nil), sensorList...)
}

// SetOperationMode accepts any mode; the hardware has only one.
func (m *Module) SetOperationMode(mode int) int { return 0 }

// Open builds a device with its own multiplexer and driver sources. The
// name is informational: every name yields the poll device.
func (m *Module) Open(name string) (*Device, error) {
	lg := m.log.With().Str("device", name).Logger()
	srcs := m.openSources(m.paths, lg)
	opts := m.opts
	opts.Log = &lg
	mux, err := core.New(srcs, opts)
	if err != nil {
		for _, s := range srcs {
			if s != nil {
				_ = s.Close()
			}
		}
		return nil, err
	}
	return &Device{mux: mux, log: lg}, nil
}

// Device adapts a multiplexer to the host ABI.
type Device struct {
	mux *core.Multiplexer
	log zerolog.Logger
}

var _ PollDevice = (*Device)(nil)

func (d *Device) Activate(h types.Handle, enabled bool) int {
	return d.result("activate", h, d.mux.Activate(h, enabled))
}

func (d *Device) SetDelay(h types.Handle, ns int64) int {
	return d.result("set delay", h, d.mux.SetDelay(h, ns))
}

func (d *Device) Batch(h types.Handle, flags int, periodNs, timeoutNs int64) int {
	return d.result("batch", h, d.mux.Batch(h, flags, periodNs, timeoutNs))
}

func (d *Device) Flush(h types.Handle) int {
	return d.result("flush", h, d.mux.Flush(h))
}

// Poll blocks until at least one event is available. Events gathered
// before a failure are still returned; the failure surfaces only when
// nothing was gathered.
func (d *Device) Poll(buf []types.Event) int {
	n, err := d.mux.Poll(buf)
	if err == nil {
		return n
	}
	if n > 0 {
		d.log.Warn().Err(err).Int("events", n).Msg("poll failed after gathering events")
		return n
	}
	return errcode.Errno(err)
}

// InjectSensorData is accepted and ignored.
func (d *Device) InjectSensorData(*types.Event) int { return 0 }

// Close releases the device. Calling it again is a no-op returning the
// first result.
func (d *Device) Close() int {
	return errcode.Errno(d.mux.Close())
}

func (d *Device) result(op string, h types.Handle, err error) int {
	if err == nil {
		return 0
	}
	rc := errcode.Errno(err)
	d.log.Debug().Err(err).Str("op", op).Int32("handle", int32(h)).Int("errno", rc).Msg("request failed")
	return rc
}
