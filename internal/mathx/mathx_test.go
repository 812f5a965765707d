package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int64 }{
		{5, 0, 31, 5},
		{-1, 0, 31, 0},
		{40, 0, 31, 31},
		{40, 31, 0, 31}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d)=%d want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 4},
		{5, 3, 2},
		{-7, 2, -4},
		{7, -2, -4},
		{1, 0, 0},
	}
	for _, c := range cases {
		if got := RoundDiv(c.a, c.b); got != c.want {
			t.Fatalf("RoundDiv(%d,%d)=%d want %d", c.a, c.b, got, c.want)
		}
	}
}
