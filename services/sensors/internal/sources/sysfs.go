package sources

import (
	"os"
	"path/filepath"
	"strconv"
)

// attrDir is a sysfs directory of writable control attributes.
type attrDir string

// writeInt writes v followed by a newline to the named attribute.
func (d attrDir) writeInt(name string, v int64) error {
	if d == "" {
		return os.ErrNotExist
	}
	f, err := os.OpenFile(filepath.Join(string(d), name), os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.Write(append(strconv.AppendInt(nil, v, 10), '\n'))
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

const (
	attrEnable    = "enable"
	attrPollDelay = "poll_delay"
)

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
