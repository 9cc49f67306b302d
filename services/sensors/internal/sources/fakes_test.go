package sources

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"devicehal-go/types"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

type fakeReader struct {
	mu      sync.Mutex
	batches [][]evdev.InputEvent
	abs     map[uint16]int32
	absErr  error
	readErr error
	closed  bool
}

func (f *fakeReader) Fd() int { return 42 }

func (f *fakeReader) Read() ([]evdev.InputEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeReader) AbsValue(code uint16) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.absErr != nil {
		return 0, f.absErr
	}
	return f.abs[code], nil
}

func (f *fakeReader) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// feed queues one raw batch, terminated by a SYN_REPORT at sec.
func (f *fakeReader) feed(sec int64, evs ...evdev.InputEvent) {
	evs = append(evs, evdev.InputEvent{Time: syscall.Timeval{Sec: sec}, Type: evdev.EV_SYN, Code: evdev.SYN_REPORT})
	f.mu.Lock()
	f.batches = append(f.batches, evs)
	f.mu.Unlock()
}

func abs(code uint16, v int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_ABS, Code: code, Value: v}
}

func rel(code uint16, v int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_REL, Code: code, Value: v}
}

// newAttrs creates a sysfs-like directory with the control attributes.
func newAttrs(t *testing.T) attrDir {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{attrEnable, attrPollDelay} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return attrDir(dir)
}

// take returns the attribute's content and empties it, so each write can
// be checked on its own.
func (d attrDir) take(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(string(d), name)
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(p, 0); err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func testLog(buf *bytes.Buffer) zerolog.Logger {
	if buf == nil {
		return zerolog.Nop()
	}
	return zerolog.New(buf)
}

// readAll drains a source through an oversized buffer.
func readAll(t *testing.T, r interface {
	ReadEvents([]types.Event) (int, error)
}) []types.Event {
	t.Helper()
	buf := make([]types.Event, 64)
	n, err := r.ReadEvents(buf)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	return buf[:n]
}

var errBoom = unix.EIO
