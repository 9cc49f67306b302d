// services/sensors/internal/core/mux.go
package core

import (
	"errors"
	"sync"
	"time"

	"devicehal-go/errcode"
	"devicehal-go/types"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SettleDelay is how long the gyroscope must be left alone before it is
// powered down.
const SettleDelay = 200 * time.Millisecond

// Options tune a Multiplexer. Zero values select the defaults.
type Options struct {
	Wait  WaitFunc            // default PollWait
	Sleep func(time.Duration) // default time.Sleep
	Log   *zerolog.Logger     // default global logger
}

// Multiplexer owns the driver sources and the wake pipe and merges all
// sources into a single blocking event stream.
//
// Poll must only be called from one goroutine at a time. Activate,
// SetDelay, Batch and Flush may run concurrently with a blocked Poll.
type Multiplexer struct {
	sources [NumSlots]Source
	wake    *wakePipe
	ready   *readySet

	wait  WaitFunc
	sleep func(time.Duration)
	log   zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New takes ownership of sources, indexed by Slot.
func New(sources [NumSlots]Source, opts Options) (*Multiplexer, error) {
	for i, s := range sources {
		if s == nil {
			return nil, errors.New("missing driver source for slot " + Slot(i).String())
		}
	}
	if opts.Wait == nil {
		opts.Wait = PollWait
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	lg := log.Logger
	if opts.Log != nil {
		lg = *opts.Log
	}
	lg = lg.With().Str("component", "sensors").Logger()

	wake, err := newWakePipe(lg)
	if err != nil {
		return nil, errcode.Wrap(errcode.IO, "wake pipe", err)
	}
	m := &Multiplexer{
		sources: sources,
		wake:    wake,
		wait:    opts.Wait,
		sleep:   opts.Sleep,
		log:     lg,
	}
	m.ready = newReadySet(m.sources[:], wake.Fd())
	return m, nil
}

// Activate enables or disables the sensor behind h. A successful enable
// wakes any blocked Poll so that a source which already has data is
// drained without waiting for its next readiness edge.
func (m *Multiplexer) Activate(h types.Handle, enabled bool) error {
	slot, err := Route(h)
	if err != nil {
		return err
	}
	if slot == SlotGyro && !enabled {
		m.sleep(SettleDelay)
	}
	if err := m.sources[slot].Enable(h, enabled); err != nil {
		return err
	}
	if enabled {
		m.wake.Signal()
	}
	return nil
}

func (m *Multiplexer) SetDelay(h types.Handle, ns int64) error {
	slot, err := Route(h)
	if err != nil {
		return err
	}
	return m.sources[slot].SetDelay(h, ns)
}

func (m *Multiplexer) Batch(h types.Handle, flags int, periodNs, latencyNs int64) error {
	slot, err := Route(h)
	if err != nil {
		return err
	}
	return m.sources[slot].Batch(h, flags, periodNs, latencyNs)
}

func (m *Multiplexer) Flush(h types.Handle) error {
	slot, err := Route(h)
	if err != nil {
		return err
	}
	return m.sources[slot].Flush(h)
}

// Poll fills buf with up to len(buf) events and returns how many it
// wrote. It blocks until at least one event is available. A wake from
// Activate only makes it re-check the sources; with nothing to read it goes
// back to waiting.
//
// Events are grouped by source in slot order within one call; they are
// not merged by timestamp. On error, the first n events of buf are still
// valid.
func (m *Multiplexer) Poll(buf []types.Event) (int, error) {
	count := len(buf)
	nb := 0
	n := 0

	for {
		// Leftovers from the previous wait, or buffered inside a driver.
		for i := 0; count > 0 && i < int(NumSlots); i++ {
			src := m.sources[i]
			if !m.ready.readable(i) && !src.HasPendingEvents() {
				continue
			}
			got, err := src.ReadEvents(buf[nb : nb+count])
			if err != nil {
				m.ready.clear(i)
				return nb, err
			}
			if got < count {
				// no more data for this source
				m.ready.clear(i)
			}
			count -= got
			nb += got
		}

		if count > 0 {
			// Room left: only peek if we already have something to return.
			timeout := time.Duration(-1)
			if nb > 0 {
				timeout = 0
			}
			var err error
			n, err = m.wait(m.ready.fds, timeout)
			if err != nil {
				m.log.Error().Err(err).Msg("poll() failed")
				return nb, errcode.Wrap(errcode.IO, "poll", err)
			}
			m.wake.DrainIfSignaled(m.ready.wake())
		}

		if n == 0 || count == 0 {
			break
		}
	}
	return nb, nil
}

// Close releases every source in slot order and the wake pipe. The
// gyroscope settle delay is not applied here. Later calls return the first
// call's result without touching the descriptors again.
func (m *Multiplexer) Close() error {
	m.closeOnce.Do(func() { m.closeErr = m.close() })
	return m.closeErr
}

func (m *Multiplexer) close() error {
	var first error
	for i, s := range m.sources {
		if err := s.Close(); err != nil {
			m.log.Warn().Err(err).Str("slot", Slot(i).String()).Msg("close driver source")
			if first == nil {
				first = err
			}
		}
	}
	if err := m.wake.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
