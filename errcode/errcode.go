package errcode

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Code is a stable, host-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidHandle Code = "invalid_handle"
	Unsupported   Code = "unsupported"
	NoDevice      Code = "no_device"
	Driver        Code = "driver_error"
	IO            Code = "io_error"

	Error Code = "error" // generic fallback
)

// E wraps a cause with the operation that failed.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap returns nil for a nil cause.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	var no unix.Errno
	if errors.As(err, &no) {
		return Driver
	}
	return Error
}

// Errno maps err to the host ABI convention: 0 on success, otherwise a
// negated OS error number. An errno anywhere in the chain wins; codes
// without one fall back to a fixed mapping.
func Errno(err error) int {
	if err == nil {
		return 0
	}
	var no unix.Errno
	if errors.As(err, &no) && no != 0 {
		return -int(no)
	}
	switch Of(err) {
	case InvalidHandle:
		return -int(unix.EINVAL)
	case Unsupported:
		return -int(unix.ENOSYS)
	case NoDevice:
		return -int(unix.ENODEV)
	default:
		return -int(unix.EIO)
	}
}
