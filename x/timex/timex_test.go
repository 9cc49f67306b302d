package timex

import (
	"testing"
	"time"
)

func TestTimevalNs(t *testing.T) {
	if got := TimevalNs(2, 500); got != 2_000_500_000 {
		t.Fatalf("TimevalNs=%d", got)
	}
}

func TestNowNsTracksWallClock(t *testing.T) {
	before := time.Now().UnixNano()
	got := NowNs()
	if got < before || got > time.Now().UnixNano() {
		t.Fatalf("NowNs=%d outside [%d, now]", got, before)
	}
}
