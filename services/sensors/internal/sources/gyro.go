package sources

import (
	"math"

	"devicehal-go/types"
	"devicehal-go/x/mathx"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
)

// Gyroscope counts are 70 mdps each at the 2000 dps range.
const (
	RangeGyro    = 2000 * math.Pi / 180
	ConvertGyro  = (70.0 / 1000) * (math.Pi / 180)
	minGyroDelay = int64(15_000_000)
	maxGyroDelay = int64(1_000_000_000)
)

// Gyro is the gyroscope driver. Rates arrive as relative events on the
// three rotation axes.
type Gyro struct {
	base
	enabled bool
	rate    [3]int32
	dirty   bool
}

func newGyro(in eventReader, attrs attrDir, log zerolog.Logger) *Gyro {
	return &Gyro{base: newBase("gyro", in, attrs, log)}
}

func (s *Gyro) Enable(h types.Handle, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled == s.enabled {
		return nil
	}
	if err := s.setAttr("enable", attrEnable, boolInt(enabled)); err != nil {
		return err
	}
	s.enabled = enabled
	return nil
}

func (s *Gyro) SetDelay(_ types.Handle, ns int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAttr("set delay", attrPollDelay, mathx.Clamp(ns, minGyroDelay, maxGyroDelay))
}

func (s *Gyro) Batch(h types.Handle, flags int, periodNs, _ int64) error {
	if flags&types.BatchDryRun != 0 {
		return nil
	}
	return s.SetDelay(h, periodNs)
}

func (s *Gyro) Flush(h types.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushComplete(h, s.enabled, false)
}

func (s *Gyro) ReadEvents(dst []types.Event) (int, error) {
	return s.read(dst, s.decode)
}

func (s *Gyro) decode(ev evdev.InputEvent) {
	switch {
	case ev.Type == evdev.EV_REL:
		switch ev.Code {
		case evdev.REL_RX:
			s.rate[0] = ev.Value
		case evdev.REL_RY:
			s.rate[1] = ev.Value
		case evdev.REL_RZ:
			s.rate[2] = ev.Value
		default:
			return
		}
		s.dirty = true
	case ev.Type == evdev.EV_SYN && ev.Code == evdev.SYN_REPORT:
		if s.dirty && s.enabled {
			e := types.Event{Sensor: types.HandleGyroscope, Type: types.TypeGyroscope, Timestamp: eventTime(ev)}
			e.Data[0], e.Data[1], e.Data[2] = scale3(s.rate, ConvertGyro)
			e.Status = types.StatusHigh
			s.emit(e)
		}
		s.dirty = false
	}
}
