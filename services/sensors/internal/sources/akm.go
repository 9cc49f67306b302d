// services/sensors/internal/sources/akm.go
package sources

import (
	"math"

	"devicehal-go/types"
	"devicehal-go/x/mathx"
	"devicehal-go/x/timex"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// Unit conversions of the compass daemon's input device.
const (
	GravityEarth = 9.80665

	// Accelerometer counts: 1 g = 1000 counts.
	ConvertA     = GravityEarth / 1000
	RangeA       = 2 * GravityEarth
	ResolutionA  = RangeA / 2048
	ConvertM     = 1.0 / 16
	ConvertO     = 1.0 / 64
	minAkmDelay  = int64(15_000_000)
	maxAkmDelay  = int64(1_000_000_000)
	akmAxisCount = 3
)

// Akm is the combined accelerometer, compass and significant motion
// driver. One input device carries all of them; each handle is enabled
// separately and reports only its own events.
type Akm struct {
	base

	enabled uint32 // bit per handle
	delays  map[types.Handle]int64

	accel  [akmAxisCount]int32
	mag    [akmAxisCount]int32
	orient [akmAxisCount]int32
	status int8
	motion bool

	dirty uint32 // handles touched since the last report
}

func newAkm(in eventReader, attrs attrDir, log zerolog.Logger) *Akm {
	s := &Akm{
		base:   newBase("akm", in, attrs, log),
		delays: make(map[types.Handle]int64),
		status: types.StatusHigh,
	}
	s.sensor = s
	return s
}

func bit(h types.Handle) uint32 { return 1 << uint32(h) }

func (s *Akm) isEnabled(h types.Handle) bool { return s.enabled&bit(h) != 0 }

func (s *Akm) Enable(h types.Handle, enabled bool) error {
	changed, err := s.setEnabled(h, enabled)
	if err != nil || !changed || !enabled {
		return err
	}
	s.resample(sampleFor(h))
	return nil
}

func (s *Akm) setEnabled(h types.Handle, enabled bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mask := s.enabled &^ bit(h)
	if enabled {
		mask |= bit(h)
	}
	if mask == s.enabled {
		return false, nil
	}
	if err := s.setAttr("enable", attrEnable, int64(mask)); err != nil {
		return false, err
	}
	s.enabled = mask
	return true, s.applyDelay()
}

func sampleFor(h types.Handle) drivers.Measurement {
	switch h {
	case types.HandleAccelerometer:
		return drivers.Acceleration
	case types.HandleMagneticField, types.HandleOrientation:
		return drivers.MagneticField
	default:
		return 0
	}
}

func (s *Akm) SetDelay(h types.Handle, ns int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[h] = mathx.Clamp(ns, minAkmDelay, maxAkmDelay)
	return s.applyDelay()
}

// applyDelay programs the fastest rate any enabled continuous handle asked
// for. Callers hold mu.
func (s *Akm) applyDelay() error {
	best := int64(math.MaxInt64)
	for h, d := range s.delays {
		if h != types.HandleSignificantMotion && s.isEnabled(h) {
			best = mathx.Min(best, d)
		}
	}
	if best == math.MaxInt64 {
		return nil
	}
	return s.setAttr("set delay", attrPollDelay, best)
}

func (s *Akm) Batch(h types.Handle, flags int, periodNs, _ int64) error {
	if flags&types.BatchDryRun != 0 || h == types.HandleSignificantMotion {
		return nil
	}
	return s.SetDelay(h, periodNs)
}

func (s *Akm) Flush(h types.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushComplete(h, s.isEnabled(h), h == types.HandleSignificantMotion)
}

func (s *Akm) ReadEvents(dst []types.Event) (int, error) {
	return s.read(dst, s.decode)
}

// Update samples the axes selected by which and queues an event for each
// enabled handle they feed.
func (s *Akm) Update(which drivers.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := timex.NowNs()
	if which&drivers.Acceleration != 0 {
		if err := s.sample(&s.accel, evdev.ABS_X, evdev.ABS_Y, evdev.ABS_Z); err != nil {
			return err
		}
		if s.isEnabled(types.HandleAccelerometer) {
			s.emitVector(types.HandleAccelerometer, now)
		}
	}
	if which&drivers.MagneticField != 0 {
		if err := s.sample(&s.mag, evdev.ABS_RX, evdev.ABS_RY, evdev.ABS_RZ); err != nil {
			return err
		}
		if err := s.sample(&s.orient, evdev.ABS_HAT0X, evdev.ABS_HAT0Y, evdev.ABS_BRAKE); err != nil {
			return err
		}
		for _, h := range []types.Handle{types.HandleMagneticField, types.HandleOrientation} {
			if s.isEnabled(h) {
				s.emitVector(h, now)
			}
		}
	}
	return nil
}

func (s *Akm) sample(dst *[akmAxisCount]int32, codes ...uint16) error {
	for i, c := range codes {
		v, err := s.in.AbsValue(c)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func scale3(v [akmAxisCount]int32, k float64) (float32, float32, float32) {
	return float32(float64(v[0]) * k), float32(float64(v[1]) * k), float32(float64(v[2]) * k)
}

func (s *Akm) decode(ev evdev.InputEvent) {
	switch ev.Type {
	case evdev.EV_ABS:
		s.decodeAbs(ev)
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			s.report(eventTime(ev))
		}
	}
}

func (s *Akm) decodeAbs(ev evdev.InputEvent) {
	const (
		acc = 1 << types.HandleAccelerometer
		mag = 1 << types.HandleMagneticField
		ori = 1 << types.HandleOrientation
		smd = 1 << types.HandleSignificantMotion
	)
	switch ev.Code {
	case evdev.ABS_X:
		s.accel[0], s.dirty = ev.Value, s.dirty|acc
	case evdev.ABS_Y:
		s.accel[1], s.dirty = ev.Value, s.dirty|acc
	case evdev.ABS_Z:
		s.accel[2], s.dirty = ev.Value, s.dirty|acc
	case evdev.ABS_RX:
		s.mag[0], s.dirty = ev.Value, s.dirty|mag
	case evdev.ABS_RY:
		s.mag[1], s.dirty = ev.Value, s.dirty|mag
	case evdev.ABS_RZ:
		s.mag[2], s.dirty = ev.Value, s.dirty|mag
	case evdev.ABS_HAT0X:
		s.orient[0], s.dirty = ev.Value, s.dirty|ori
	case evdev.ABS_HAT0Y:
		s.orient[1], s.dirty = ev.Value, s.dirty|ori
	case evdev.ABS_BRAKE:
		s.orient[2], s.dirty = ev.Value, s.dirty|ori
	case evdev.ABS_WHEEL:
		s.status = int8(mathx.Clamp(ev.Value, int32(types.StatusUnreliable), int32(types.StatusHigh)))
		s.dirty |= mag | ori
	case evdev.ABS_MISC:
		if ev.Value != 0 {
			s.motion = true
			s.dirty |= smd
		}
	}
}

// report emits one event per enabled handle touched since the last
// report. Significant motion fires once and then disarms itself.
func (s *Akm) report(ts int64) {
	touched := s.dirty & s.enabled
	s.dirty = 0
	for _, h := range []types.Handle{types.HandleAccelerometer, types.HandleMagneticField, types.HandleOrientation} {
		if touched&bit(h) != 0 {
			s.emitVector(h, ts)
		}
	}
	if touched&bit(types.HandleSignificantMotion) != 0 && s.motion {
		e := types.Event{Sensor: types.HandleSignificantMotion, Type: types.TypeSignificantMotion, Timestamp: ts}
		e.Data[0] = 1
		s.emit(e)
		mask := s.enabled &^ bit(types.HandleSignificantMotion)
		if err := s.setAttr("disarm", attrEnable, int64(mask)); err == nil {
			s.enabled = mask
		}
	}
	s.motion = false
}

func (s *Akm) emitVector(h types.Handle, ts int64) {
	e := types.Event{Sensor: h, Timestamp: ts}
	var raw [akmAxisCount]int32
	var k float64
	switch h {
	case types.HandleAccelerometer:
		e.Type, raw, k = types.TypeAccelerometer, s.accel, ConvertA
		e.Status = types.StatusHigh
	case types.HandleMagneticField:
		e.Type, raw, k = types.TypeMagneticField, s.mag, ConvertM
		e.Status = s.status
	case types.HandleOrientation:
		e.Type, raw, k = types.TypeOrientation, s.orient, ConvertO
		e.Status = s.status
	}
	e.Data[0], e.Data[1], e.Data[2] = scale3(raw, k)
	s.emit(e)
}
