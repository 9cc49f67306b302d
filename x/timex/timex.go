package timex

import "time"

// NowNs returns Unix nanoseconds, the clock input events are stamped with.
func NowNs() int64 { return time.Now().UnixNano() }

// TimevalNs converts a kernel timeval (as carried by input events) to ns.
func TimevalNs(sec, usec int64) int64 {
	return sec*int64(time.Second) + usec*int64(time.Microsecond)
}
