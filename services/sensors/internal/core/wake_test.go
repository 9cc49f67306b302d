package core

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

func newTestWake(t *testing.T) (*wakePipe, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	p, err := newWakePipe(zerolog.New(logs))
	if err != nil {
		t.Fatalf("newWakePipe: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, logs
}

func TestWakeSignalThenDrain(t *testing.T) {
	p, logs := newTestWake(t)
	p.Signal()
	p.Signal()

	pfd := []unix.PollFd{{Fd: int32(p.Fd()), Events: unix.POLLIN}}
	if n, err := PollWait(pfd, 0); n != 1 || err != nil {
		t.Fatalf("wake fd not readable: %d, %v", n, err)
	}
	p.DrainIfSignaled(&pfd[0])
	if pfd[0].Revents != 0 {
		t.Fatal("revents not cleared")
	}
	if n, _ := PollWait(pfd, 0); n != 0 {
		t.Fatal("pending wakes should collapse into one drain")
	}
	if logs.String() != "" {
		t.Fatalf("unexpected logs: %s", logs.String())
	}
}

func TestWakeDrainSkipsWhenNotSignaled(t *testing.T) {
	p, _ := newTestWake(t)
	p.Signal()
	pfd := unix.PollFd{Fd: int32(p.Fd()), Events: unix.POLLIN}
	p.DrainIfSignaled(&pfd) // revents clear: must not read
	var b [1]byte
	if n, err := unix.Read(p.r, b[:]); n != 1 || err != nil || b[0] != wakeMessage {
		t.Fatalf("wake byte consumed without readiness: %d %v", n, err)
	}
}

func TestWakeUnknownMessageIsLoggedOnly(t *testing.T) {
	p, logs := newTestWake(t)
	if _, err := unix.Write(p.w, []byte{'X'}); err != nil {
		t.Fatal(err)
	}
	pfd := unix.PollFd{Fd: int32(p.Fd()), Events: unix.POLLIN, Revents: unix.POLLIN}
	p.DrainIfSignaled(&pfd)
	if !strings.Contains(logs.String(), "unknown message on wake queue") {
		t.Fatalf("missing log: %s", logs.String())
	}
}

func TestWakeReadErrorIsLoggedOnly(t *testing.T) {
	p, logs := newTestWake(t)
	pfd := unix.PollFd{Fd: int32(p.Fd()), Events: unix.POLLIN, Revents: unix.POLLIN}
	p.DrainIfSignaled(&pfd) // empty pipe: EAGAIN
	if !strings.Contains(logs.String(), "error reading from wake pipe") {
		t.Fatalf("missing log: %s", logs.String())
	}
	if pfd.Revents != 0 {
		t.Fatal("revents not cleared after failed read")
	}
}

func TestWakeSignalOnFullPipeIsLoggedOnly(t *testing.T) {
	p, logs := newTestWake(t)
	chunk := make([]byte, 4096)
	for {
		if _, err := unix.Write(p.w, chunk); err != nil {
			break
		}
	}
	for {
		if _, err := unix.Write(p.w, chunk[:1]); err != nil {
			break
		}
	}
	p.Signal()
	if !strings.Contains(logs.String(), "error sending wake message") {
		t.Fatalf("missing log: %s", logs.String())
	}
}
