package lights

import (
	"os"
	"strconv"

	"devicehal-go/errcode"
)

// writeFile opens path read-write, writes b and closes it again. The
// control files are never kept open between requests.
func (a *Actuator) writeFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		a.warnOnce(path, err)
		return errcode.Wrap(errcode.IO, "open", err)
	}
	_, werr := f.Write(b)
	_ = f.Close()
	if werr != nil {
		return errcode.Wrap(errcode.IO, "write", werr)
	}
	return nil
}

// writeInt writes v as a decimal line.
func (a *Actuator) writeInt(path string, v int) error {
	a.log.Debug().Str("path", path).Int("value", v).Msg("write int")
	return a.writeFile(path, append(strconv.AppendInt(nil, int64(v), 10), '\n'))
}

func (a *Actuator) writeStr(path, s string) error {
	a.log.Debug().Str("path", path).Str("value", s).Msg("write str")
	return a.writeFile(path, []byte(s))
}

// warnOnce logs the first open failure of each path. Callers hold mu.
func (a *Actuator) warnOnce(path string, err error) {
	if a.warned[path] {
		return
	}
	a.warned[path] = true
	a.log.Error().Err(err).Str("path", path).Msg("failed to open light control file")
}
