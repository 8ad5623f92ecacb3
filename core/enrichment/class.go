package enrichment

import (
	"math"

	"ligysis-core/errs"
)

// Class is the joint conservation / missense-enrichment label of a column.
type Class string

const (
	CMD  Class = "CMD"  // conserved, missense-depleted
	CME  Class = "CME"  // conserved, missense-enriched
	UMD  Class = "UMD"  // unconserved, missense-depleted
	UME  Class = "UME"  // unconserved, missense-enriched
	None Class = "None" // mid-range divergence, OR at threshold, or undefined OR
)

// Classes lists every label in reporting order.
func Classes() []Class { return []Class{CMD, CME, None, UMD, UME} }

var classColors = map[Class]string{
	CMD:  "royalblue",
	CME:  "green",
	None: "grey",
	UMD:  "firebrick",
	UME:  "orange",
}

var classNames = map[Class]string{
	CMD:  "Conserved, Missense-Depleted",
	CME:  "Conserved, Missense-Enriched",
	None: "None",
	UMD:  "Unconserved, Missense-Depleted",
	UME:  "Unconserved, Missense-Enriched",
}

// Color is the display colour used for the label.
func (c Class) Color() string { return classColors[c] }

// Description is the long form of the label.
func (c Class) Description() string { return classNames[c] }

// Thresholds are the two divergence cutoffs and the enrichment cutoff.
type Thresholds struct {
	ConsLow  float64 // score <= ConsLow is conserved
	ConsHigh float64 // score >= ConsHigh is unconserved
	MES      float64 // odds ratio cutoff between depleted and enriched
}

// Validate requires finite thresholds with ConsLow <= ConsHigh.
func (t Thresholds) Validate() error {
	for _, v := range []float64{t.ConsLow, t.ConsHigh, t.MES} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Inputf("threshold %v is not finite", v)
		}
	}
	if t.ConsLow > t.ConsHigh {
		return errs.Inputf("conservation thresholds out of order: low %v > high %v", t.ConsLow, t.ConsHigh)
	}
	return nil
}

// Classify labels a column from its absolute-normalised conservation score
// and odds ratio. NaN inputs never satisfy a comparison and fall to None.
func Classify(score, oddsRatio float64, t Thresholds) Class {
	switch {
	case score <= t.ConsLow && oddsRatio < t.MES:
		return CMD
	case score <= t.ConsLow && oddsRatio > t.MES:
		return CME
	case score >= t.ConsHigh && oddsRatio < t.MES:
		return UMD
	case score >= t.ConsHigh && oddsRatio > t.MES:
		return UME
	}
	return None
}
