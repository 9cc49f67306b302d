// services/sensors/internal/sources/light.go
package sources

import (
	"devicehal-go/types"
	"devicehal-go/x/mathx"
	"devicehal-go/x/timex"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// luxLevels maps the ambient light chip's reported level to lux.
var luxLevels = [...]float32{10, 160, 225, 320, 640, 1280, 2600, 3000}

func levelLux(level int32) float32 {
	return luxLevels[mathx.Clamp(int(level), 0, len(luxLevels)-1)]
}

// Light is the ambient light driver. It reports on change, one event per
// input report carrying ABS_MISC.
type Light struct {
	base
	enabled bool
	level   int32
	dirty   bool
}

func newLight(in eventReader, attrs attrDir, log zerolog.Logger) *Light {
	s := &Light{base: newBase("light", in, attrs, log)}
	s.sensor = s
	return s
}

func (s *Light) Enable(h types.Handle, enabled bool) error {
	changed, err := s.setEnabled(enabled)
	if err != nil || !changed || !enabled {
		return err
	}
	// An on-change sensor reports nothing until the level moves, so
	// publish the current reading right away.
	s.resample(drivers.Luminosity)
	return nil
}

func (s *Light) setEnabled(enabled bool) (bool, error) {
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

func (s *Light) SetDelay(_ types.Handle, ns int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAttr("set delay", attrPollDelay, mathx.AtLeast(ns, 0))
}

func (s *Light) Batch(h types.Handle, flags int, periodNs, _ int64) error {
	if flags&types.BatchDryRun != 0 {
		return nil
	}
	return s.SetDelay(h, periodNs)
}

func (s *Light) Flush(h types.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushComplete(h, s.enabled, false)
}

func (s *Light) ReadEvents(dst []types.Event) (int, error) {
	return s.read(dst, s.decode)
}

// Update samples the current level and, when enabled, queues it as an event.
func (s *Light) Update(which drivers.Measurement) error {
	if which&drivers.Luminosity == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.in.AbsValue(evdev.ABS_MISC)
	if err != nil {
		return err
	}
	s.level = v
	if s.enabled {
		s.emitLevel(timex.NowNs())
	}
	return nil
}

func (s *Light) decode(ev evdev.InputEvent) {
	switch {
	case ev.Type == evdev.EV_ABS && ev.Code == evdev.ABS_MISC:
		s.level = ev.Value
		s.dirty = true
	case ev.Type == evdev.EV_SYN && ev.Code == evdev.SYN_REPORT:
		if s.dirty && s.enabled {
			s.emitLevel(eventTime(ev))
		}
		s.dirty = false
	}
}

func (s *Light) emitLevel(ts int64) {
	e := types.Event{Sensor: types.HandleLight, Type: types.TypeLight, Timestamp: ts}
	e.Data[0] = levelLux(s.level)
	s.emit(e)
}
