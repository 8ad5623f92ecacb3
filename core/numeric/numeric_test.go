package numeric

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		6:        6,
		1.234:    1.23,
		1.236:    1.24,
		0.125:    0.12, // exact tie goes to even
		0.005:    0.01, // stored above the tie
		0.015:    0.01, // stored below the tie
		2.675:    2.67,
		1.005:    1,
		-2.499:   -2.5,
		120.9999: 121,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v)=%v want %v", in, got, want)
		}
	}
	if !math.IsNaN(Round2(math.NaN())) || !math.IsInf(Round2(math.Inf(1)), 1) {
		t.Fatalf("non-finite values must pass through")
	}
}

func TestRescale(t *testing.T) {
	if got := Rescale(6, 6, 120); got != 0 {
		t.Fatalf("lo: %v", got)
	}
	if got := Rescale(120, 6, 120); got != 100 {
		t.Fatalf("hi: %v", got)
	}
	if got := Rescale(126, 6, 120); got <= 100 {
		t.Fatalf("above range must exceed 100, got %v", got)
	}
	if !math.IsNaN(Rescale(3, 3, 3)) {
		t.Fatalf("zero-width range must be NaN")
	}
}
