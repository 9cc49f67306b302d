// services/sensors/internal/sources/source.go
package sources

import (
	"sync"

	"devicehal-go/errcode"
	"devicehal-go/services/sensors/internal/halerr"
	"devicehal-go/types"
	"devicehal-go/x/timex"

	"github.com/eapache/queue"
	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// eventVersion is the size of the host's event record, carried in every
// event so the host can check the layout.
const eventVersion int32 = 104

// base holds what every input-backed driver shares: the device, its sysfs
// controls and a FIFO of decoded events not yet handed out. mu guards the
// FIFO and the embedding driver's state.
type base struct {
	name string

	mu      sync.Mutex
	in      eventReader
	attrs   attrDir
	pending *queue.Queue

	// sensor is the embedding driver seen through drivers.Sensor. Nil for
	// drivers that cannot be sampled on demand.
	sensor drivers.Sensor

	log zerolog.Logger
}

func newBase(name string, in eventReader, attrs attrDir, log zerolog.Logger) base {
	return base{
		name:    name,
		in:      in,
		attrs:   attrs,
		pending: queue.New(),
		log:     log.With().Str("source", name).Logger(),
	}
}

func (b *base) Fd() int { return b.in.Fd() }

// resample takes a fresh reading of which once an enable has been applied.
// Update takes mu, so callers must not hold it.
func (b *base) resample(which drivers.Measurement) {
	if b.sensor == nil || which == 0 {
		return
	}
	if err := b.sensor.Update(which); err != nil {
		b.log.Debug().Err(err).Msg("initial sample unavailable")
	}
}

func (b *base) HasPendingEvents() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending.Length() > 0
}

func (b *base) Close() error { return b.in.Close() }

// emit appends a decoded event. Callers hold mu.
func (b *base) emit(e types.Event) {
	e.Version = eventVersion
	b.pending.Add(e)
}

// read hands out buffered events, pulling one more batch of raw input
// through decode when the buffer alone cannot fill dst. decode runs with
// mu held.
func (b *base) read(dst []types.Event, decode func(evdev.InputEvent)) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(dst) == 0 {
		return 0, nil
	}
	if b.pending.Length() < len(dst) {
		raw, err := b.in.Read()
		if err != nil && b.pending.Length() == 0 {
			return 0, errcode.Wrap(errcode.Driver, b.name+": read", err)
		}
		for _, ev := range raw {
			decode(ev)
		}
	}
	n := 0
	for n < len(dst) && b.pending.Length() > 0 {
		dst[n] = b.pending.Remove().(types.Event)
		n++
	}
	return n, nil
}

// flushComplete queues the meta event answering a flush of h. Callers
// hold mu.
func (b *base) flushComplete(h types.Handle, enabled, oneShot bool) error {
	switch {
	case oneShot:
		return halerr.ErrOneShotFlush
	case !enabled:
		return halerr.ErrNotEnabled
	}
	e := types.Event{Type: types.TypeMetaData}
	e.Data[0] = types.MetaFlushComplete
	e.Data[1] = float32(h)
	b.emit(e)
	return nil
}

// setAttr writes a control attribute, wrapping failures for op.
func (b *base) setAttr(op, attr string, v int64) error {
	if err := b.attrs.writeInt(attr, v); err != nil {
		b.log.Warn().Err(err).Str("attr", attr).Int64("value", v).Msg("sysfs write failed")
		return errcode.Wrap(errcode.Driver, b.name+": "+op, err)
	}
	return nil
}

// eventTime converts an input event's timeval to ns.
func eventTime(ev evdev.InputEvent) int64 {
	return timex.TimevalNs(int64(ev.Time.Sec), int64(ev.Time.Usec))
}
