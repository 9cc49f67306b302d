// services/sensors/internal/core/fakes_test.go
package core

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"devicehal-go/types"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

type enableCall struct {
	h       types.Handle
	enabled bool
	at      time.Time
}

// fakeSource is a scriptable driver source backed by a real pipe, so the
// multiplexer's poll(2) wait sees genuine readiness.
type fakeSource struct {
	mu sync.Mutex
	r  int
	w  int

	queue    []types.Event
	hidden   bool          // queue is buffered without fd readiness
	onEnable []types.Event // staged on a successful enable

	enableErr error
	readErr   error

	enables []enableCall
	delays  []int64
	batches []int64
	flushes []types.Handle
	reads   int
	closes  int
}

func newFakeSource(t *testing.T) *fakeSource {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	f := &fakeSource{r: fds[0], w: fds[1]}
	t.Cleanup(func() {
		_ = unix.Close(f.r)
		_ = unix.Close(f.w)
	})
	return f
}

// push queues events and makes the fd readable.
func (f *fakeSource) push(evs ...types.Event) {
	f.mu.Lock()
	f.queue = append(f.queue, evs...)
	f.mu.Unlock()
	_, _ = unix.Write(f.w, []byte{1})
}

// stage queues events reported only through HasPendingEvents.
func (f *fakeSource) stage(evs ...types.Event) {
	f.mu.Lock()
	f.queue = append(f.queue, evs...)
	f.hidden = true
	f.mu.Unlock()
}

func (f *fakeSource) Fd() int { return f.r }

func (f *fakeSource) Enable(h types.Handle, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enables = append(f.enables, enableCall{h: h, enabled: enabled, at: time.Now()})
	if f.enableErr != nil {
		return f.enableErr
	}
	if enabled && len(f.onEnable) > 0 {
		f.queue = append(f.queue, f.onEnable...)
		f.hidden = true
	}
	return nil
}

func (f *fakeSource) SetDelay(_ types.Handle, ns int64) error {
	f.mu.Lock()
	f.delays = append(f.delays, ns)
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) Batch(_ types.Handle, _ int, periodNs, _ int64) error {
	f.mu.Lock()
	f.batches = append(f.batches, periodNs)
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) Flush(h types.Handle) error {
	f.mu.Lock()
	f.flushes = append(f.flushes, h)
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) ReadEvents(dst []types.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return 0, f.readErr
	}
	n := copy(dst, f.queue)
	f.queue = f.queue[n:]
	if len(f.queue) == 0 {
		var b [64]byte
		for {
			if _, err := unix.Read(f.r, b[:]); err != nil {
				break
			}
		}
		f.hidden = false
	}
	return n, nil
}

func (f *fakeSource) HasPendingEvents() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hidden && len(f.queue) > 0
}

func (f *fakeSource) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeSource) enableCalls() []enableCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]enableCall(nil), f.enables...)
}

// ---- helpers ----

type rig struct {
	m    *Multiplexer
	srcs [NumSlots]*fakeSource
	logs *syncBuffer
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func newRig(t *testing.T, opts Options) *rig {
	t.Helper()
	r := &rig{logs: &syncBuffer{}}
	var srcs [NumSlots]Source
	for i := range r.srcs {
		r.srcs[i] = newFakeSource(t)
		srcs[i] = r.srcs[i]
	}
	if opts.Log == nil {
		lg := zerolog.New(r.logs)
		opts.Log = &lg
	}
	m, err := New(srcs, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	r.m = m
	return r
}

func ev(h types.Handle, seq int) types.Event {
	e := types.Event{Sensor: h, Timestamp: int64(seq)}
	e.Data[0] = float32(seq)
	return e
}

func evs(h types.Handle, n int) []types.Event {
	out := make([]types.Event, n)
	for i := range out {
		out[i] = ev(h, i)
	}
	return out
}

type pollResult struct {
	n   int
	err error
}

func pollAsync(m *Multiplexer, buf []types.Event) <-chan pollResult {
	ch := make(chan pollResult, 1)
	go func() {
		n, err := m.Poll(buf)
		ch <- pollResult{n, err}
	}()
	return ch
}

func recvWithin[T any](t *testing.T, ch <-chan T, d time.Duration) (T, bool) {
	t.Helper()
	var zero T
	select {
	case v := <-ch:
		return v, true
	case <-time.After(d):
		return zero, false
	}
}
