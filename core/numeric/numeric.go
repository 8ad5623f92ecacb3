// Package numeric holds the rounding and rescaling helpers shared by the
// conservation and enrichment engines.
package numeric

import (
	"math"
	"strconv"
)

// Round2 rounds to two decimals the way reported scores are rounded
// everywhere in the pipeline: the exact binary value is rounded, so only
// true ties go to even (0.125 gives 0.12, while 0.005 is stored slightly
// above the tie and gives 0.01). NaN and ±Inf pass through.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// Rescale maps x from [lo,hi] onto [0,100]. Values outside the range map
// outside [0,100]. A zero-width range yields NaN.
func Rescale(x, lo, hi float64) float64 {
	if hi == lo {
		return math.NaN()
	}
	return 100 * (x - lo) / (hi - lo)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
