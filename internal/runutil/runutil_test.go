package runutil

import (
	"runtime"
	"testing"

	"ligysis/internal/config"
)

func TestEffectiveThreads(t *testing.T) {
	if got := EffectiveThreads(4, 2); got != 2 {
		t.Fatalf("capped by segments: got %d", got)
	}
	if got := EffectiveThreads(3, 0); got != 3 {
		t.Fatalf("uncapped: got %d", got)
	}
	want := runtime.NumCPU()
	if want > 100 {
		want = 100
	}
	if got := EffectiveThreads(0, 100); got != want {
		t.Fatalf("auto: got %d want %d", got, want)
	}
}

func TestThresholdWarnings(t *testing.T) {
	if w := ThresholdWarnings(config.Default()); len(w) != 0 {
		t.Fatalf("defaults should not warn: %v", w)
	}
	c := config.Default()
	c.CutHeight = 0
	c.ConsLow, c.ConsHigh = 50, 50
	c.MES = 0
	if w := ThresholdWarnings(c); len(w) != 3 {
		t.Fatalf("want 3 warnings, got %v", w)
	}
	c = config.Default()
	c.CutHeight = 1
	if w := ThresholdWarnings(c); len(w) != 1 {
		t.Fatalf("want 1 warning, got %v", w)
	}
}
