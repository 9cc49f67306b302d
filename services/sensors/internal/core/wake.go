// services/sensors/internal/core/wake.go
package core

import (
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// wakeMessage is the only byte ever written to the wake pipe.
const wakeMessage = 'W'

// wakePipe interrupts a blocked readiness wait from another goroutine.
// It only guarantees "at least one wake pending", not a count.
type wakePipe struct {
	r, w int
	log  zerolog.Logger
}

func newWakePipe(log zerolog.Logger) (*wakePipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &wakePipe{r: fds[0], w: fds[1], log: log}, nil
}

// Fd is the end polled alongside the driver sources.
func (p *wakePipe) Fd() int { return p.r }

// Signal writes one wake byte. A full pipe already holds a pending wake,
// so failures are only logged.
func (p *wakePipe) Signal() {
	if _, err := unix.Write(p.w, []byte{wakeMessage}); err != nil {
		p.log.Error().Err(err).Msg("error sending wake message")
	}
}

// DrainIfSignaled consumes pending wake bytes when pfd reports readable
// and clears its revents. Several queued signals collapse into one read.
func (p *wakePipe) DrainIfSignaled(pfd *unix.PollFd) {
	if pfd.Revents&unix.POLLIN == 0 {
		return
	}
	pfd.Revents = 0

	var buf [16]byte
	n, err := unix.Read(p.r, buf[:])
	if err != nil {
		p.log.Error().Err(err).Msg("error reading from wake pipe")
		return
	}
	for _, b := range buf[:n] {
		if b != wakeMessage {
			p.log.Error().Hex("msg", []byte{b}).Msg("unknown message on wake queue")
		}
	}
}

func (p *wakePipe) Close() error {
	errR := unix.Close(p.r)
	errW := unix.Close(p.w)
	if errR != nil {
		return errR
	}
	return errW
}
