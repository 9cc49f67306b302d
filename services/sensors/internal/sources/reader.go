// services/sensors/internal/sources/reader.go
package sources

import (
	"errors"
	"path/filepath"
	"unsafe"

	evdev "github.com/gvalkov/golang-evdev"
	"golang.org/x/sys/unix"
)

// eventReader is the input side of a driver source.
type eventReader interface {
	Fd() int
	// Read returns the next batch of raw events, or nothing when the
	// device has no data right now.
	Read() ([]evdev.InputEvent, error)
	// AbsValue returns the current value of an absolute axis.
	AbsValue(code uint16) (int32, error)
	Close() error
}

// evdevReader reads a kernel input device in non-blocking mode.
type evdevReader struct {
	dev *evdev.InputDevice
	fd  int
}

// openInput finds the input device whose name matches name among the
// device nodes matched by glob.
func openInput(glob, name string) (*evdevReader, error) {
	devs, err := evdev.ListInputDevices(glob)
	if err != nil {
		return nil, err
	}
	var found *evdev.InputDevice
	for _, d := range devs {
		if found == nil && d.Name == name {
			found = d
			continue
		}
		_ = d.File.Close()
	}
	if found == nil {
		return nil, errNotFound
	}
	fd := int(found.File.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = found.File.Close()
		return nil, err
	}
	return &evdevReader{dev: found, fd: fd}, nil
}

var errNotFound = errors.New("input device not found")

func (r *evdevReader) Fd() int { return r.fd }

func (r *evdevReader) Read() ([]evdev.InputEvent, error) {
	evs, err := r.dev.Read()
	if errors.Is(err, unix.EAGAIN) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return evs, nil
}

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// eviocgabs builds EVIOCGABS(code): _IOR('E', 0x40+code, struct input_absinfo).
func eviocgabs(code uint16) uintptr {
	const iocRead = 2
	return iocRead<<30 | unsafe.Sizeof(absInfo{})<<16 | uintptr('E')<<8 | uintptr(0x40+code)
}

func (r *evdevReader) AbsValue(code uint16) (int32, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(r.fd), eviocgabs(code), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return 0, errno
	}
	return info.Value, nil
}

func (r *evdevReader) Close() error { return r.dev.File.Close() }

// sysfsDir is the input device's sysfs directory holding its control
// attributes, e.g. /sys/class/input/event3/device.
func (r *evdevReader) sysfsDir(root string) string {
	return filepath.Join(root, filepath.Base(r.dev.Fn), "device")
}
