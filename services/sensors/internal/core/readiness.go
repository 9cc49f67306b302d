// services/sensors/internal/core/readiness.go
package core

import (
	"time"

	"golang.org/x/sys/unix"
)

// WaitFunc blocks until at least one descriptor in fds is ready or the
// timeout passes, filling Revents and returning the number of ready
// entries. A negative timeout waits indefinitely; zero does not block.
type WaitFunc func(fds []unix.PollFd, timeout time.Duration) (int, error)

// PollWait is the default WaitFunc, backed by poll(2). Interrupted calls
// are retried.
func PollWait(fds []unix.PollFd, timeout time.Duration) (int, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// readySet holds one poll entry per slot followed by the wake pipe.
type readySet struct {
	fds []unix.PollFd
}

func newReadySet(sources []Source, wakeFd int) *readySet {
	rs := &readySet{fds: make([]unix.PollFd, len(sources)+1)}
	for i, s := range sources {
		rs.fds[i] = unix.PollFd{Fd: int32(s.Fd()), Events: unix.POLLIN}
	}
	rs.fds[len(sources)] = unix.PollFd{Fd: int32(wakeFd), Events: unix.POLLIN}
	return rs
}

func (rs *readySet) readable(i int) bool { return rs.fds[i].Revents&unix.POLLIN != 0 }

func (rs *readySet) clear(i int) { rs.fds[i].Revents = 0 }

func (rs *readySet) wake() *unix.PollFd { return &rs.fds[len(rs.fds)-1] }
