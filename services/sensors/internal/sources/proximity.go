package sources

import (
	"devicehal-go/types"
	"devicehal-go/x/timex"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// proximityScale converts the chip's near/far bit to cm.
const proximityScale = 5.0

// Proximity is the proximity driver. The chip reports 0 (near) or 1 (far)
// on ABS_DISTANCE.
type Proximity struct {
	base
	enabled bool
	value   int32
	dirty   bool
}

func newProximity(in eventReader, attrs attrDir, log zerolog.Logger) *Proximity {
	s := &Proximity{base: newBase("proximity", in, attrs, log)}
	s.sensor = s
	return s
}

func (s *Proximity) Enable(h types.Handle, enabled bool) error {
	changed, err := s.setEnabled(enabled)
	if err != nil || !changed || !enabled {
		return err
	}
	s.resample(drivers.Distance)
	return nil
}

func (s *Proximity) setEnabled(enabled bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled == s.enabled {
		return false, nil
	}
	if err := s.setAttr("enable", attrEnable, boolInt(enabled)); err != nil {
		return false, err
	}
	s.enabled = enabled
	return true, nil
}

// SetDelay is accepted and ignored: the chip interrupts on change.
func (s *Proximity) SetDelay(types.Handle, int64) error { return nil }

func (s *Proximity) Batch(types.Handle, int, int64, int64) error { return nil }

func (s *Proximity) Flush(h types.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushComplete(h, s.enabled, false)
}

func (s *Proximity) ReadEvents(dst []types.Event) (int, error) {
	return s.read(dst, s.decode)
}

// Update samples the current distance and, when enabled, queues it.
func (s *Proximity) Update(which drivers.Measurement) error {
	if which&drivers.Distance == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.in.AbsValue(evdev.ABS_DISTANCE)
	if err != nil {
		return err
	}
	s.value = v
	if s.enabled {
		s.emitDistance(timex.NowNs())
	}
	return nil
}

func (s *Proximity) decode(ev evdev.InputEvent) {
	switch {
	case ev.Type == evdev.EV_ABS && ev.Code == evdev.ABS_DISTANCE:
		s.value = ev.Value
		s.dirty = true
	case ev.Type == evdev.EV_SYN && ev.Code == evdev.SYN_REPORT:
		if s.dirty && s.enabled {
			s.emitDistance(eventTime(ev))
		}
		s.dirty = false
	}
}

func (s *Proximity) emitDistance(ts int64) {
	e := types.Event{Sensor: types.HandleProximity, Type: types.TypeProximity, Timestamp: ts}
	e.Data[0] = float32(s.value) * proximityScale
	s.emit(e)
}
