package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 10, 0, 5}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d)=%d want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if AtLeast(int64(3), 10) != 10 || AtLeast(int64(30), 10) != 30 {
		t.Fatal("AtLeast")
	}
	if Min(2, 3) != 2 || Min(3.5, -1.0) != -1 {
		t.Fatal("Min")
	}
}
