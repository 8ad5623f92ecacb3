// Package conservation scores alignment columns by Shannon entropy and the
// derived Shenkin divergence score.
//
// Shenkin = 2^S · 6, so an invariant column scores exactly 6 and a column
// uniform over the 20 amino acids scores 120. Low is conserved.
package conservation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"ligysis-core/alignment"
	"ligysis-core/errs"
	"ligysis-core/internal/parmap"
	"ligysis-core/numeric"
)

// Fixed bounds for absolute normalisation.
const (
	ShenkinMin = 6.0
	ShenkinMax = 120.0
)

// Freqs is the frequency distribution of one column over the alphabet.
type Freqs struct {
	Counts      [Size]int
	Values      [Size]float64
	NonStandard map[byte]int // upper-cased unrecognised symbols, excluded from Values
	Degenerate  bool         // no recognised residue: gap frequency forced to 1
}

// Record is the conservation summary of one alignment column.
type Record struct {
	Column      int
	Entropy     float64
	Shenkin     float64
	RelNorm     float64 // observed min/max over scored columns -> 0..100
	AbsNorm     float64 // fixed 6..120 -> 0..100
	Occ         int
	Gaps        int
	OccPct      float64
	GapsPct     float64
	NonStandard map[byte]int
}

// Profile is the per-column output for a set of scored columns.
type Profile struct {
	Records  []Record
	Warnings []string
}

// Frequencies computes symbol frequencies for one column. Unrecognised
// symbols are tallied in NonStandard and left out of the denominator.
func Frequencies(col []byte) Freqs {
	var f Freqs
	gaps := 0
	for _, b := range col {
		if b == alignment.Gap {
			gaps++
		}
	}
	if gaps == len(col) {
		f.Counts[GapIndex] = gaps
		f.Values[GapIndex] = 1
		f.Degenerate = true
		return f
	}

	total := 0
	for _, b := range col {
		i, ok := Index(b)
		if !ok {
			if f.NonStandard == nil {
				f.NonStandard = make(map[byte]int)
			}
			f.NonStandard[upper(b)]++
			continue
		}
		f.Counts[i]++
		total++
	}
	if total == 0 {
		f.Values[GapIndex] = 1
		f.Degenerate = true
		return f
	}
	for i, c := range f.Counts {
		f.Values[i] = float64(c) / float64(total)
	}
	return f
}

// Entropy is the Shannon entropy (bits) of a distribution.
func Entropy(f Freqs) float64 {
	s := 0.0
	for _, v := range f.Values {
		if v > 0 {
			s += v * math.Log2(v)
		}
	}
	if s == 0 {
		return 0
	}
	return -s
}

// Shenkin converts an entropy into the rounded Shenkin score.
func Shenkin(entropy float64) float64 {
	return numeric.Round2(math.Exp2(entropy) * ShenkinMin)
}

// Stats returns occupancy, gap count and their rounded percentages.
func Stats(col []byte) (occ, gaps int, occPct, gapsPct float64) {
	for _, b := range col {
		if b == alignment.Gap {
			gaps++
		}
	}
	occ = len(col) - gaps
	if len(col) == 0 {
		return 0, 0, 0, 0
	}
	occPct = numeric.Round2(100 * float64(occ) / float64(len(col)))
	gapsPct = numeric.Round2(100 - occPct)
	return occ, gaps, occPct, gapsPct
}

// Column scores a single column.
func Column(i int, col []byte) Record {
	f := Frequencies(col)
	s := Entropy(f)
	occ, gaps, occPct, gapsPct := Stats(col)
	return Record{
		Column:      i,
		Entropy:     s,
		Shenkin:     Shenkin(s),
		Occ:         occ,
		Gaps:        gaps,
		OccPct:      occPct,
		GapsPct:     gapsPct,
		NonStandard: f.NonStandard,
	}
}

// AllColumns returns 1..aln.Len().
func AllColumns(aln alignment.Alignment) []int {
	out := make([]int, aln.Len())
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Score scores the given 1-based columns of aln and normalises them.
// Column order follows scored.
func Score(aln alignment.Alignment, scored []int) (Profile, error) {
	return ScoreWorkers(aln, scored, 1)
}

// ScoreWorkers is Score with columns computed by up to workers goroutines.
// Output is identical for any worker count.
func ScoreWorkers(aln alignment.Alignment, scored []int, workers int) (Profile, error) {
	if err := aln.Validate(); err != nil {
		return Profile{}, err
	}
	if len(scored) == 0 {
		return Profile{}, errs.Inputf("no scored columns")
	}
	n := aln.Len()
	for _, c := range scored {
		if c < 1 || c > n {
			return Profile{}, errs.Inputf("scored column %d outside alignment columns 1..%d", c, n)
		}
	}
	recs := parmap.Map(scored, workers, func(c int) Record { return Column(c, aln.Column(c)) })
	Normalize(recs)

	var p Profile
	p.Records = recs
	for _, r := range recs {
		if len(r.NonStandard) > 0 {
			p.Warnings = append(p.Warnings, fmt.Sprintf("column %d has non-standard symbols: %s", r.Column, formatCounts(r.NonStandard)))
		}
	}
	return p, nil
}

// Normalize fills RelNorm and AbsNorm in place over recs. When every score is
// identical the relative normalisation is undefined and RelNorm is NaN.
func Normalize(recs []Record) {
	if len(recs) == 0 {
		return
	}
	lo, hi := recs[0].Shenkin, recs[0].Shenkin
	for _, r := range recs[1:] {
		lo = math.Min(lo, r.Shenkin)
		hi = math.Max(hi, r.Shenkin)
	}
	for i := range recs {
		recs[i].RelNorm = numeric.Round2(numeric.Rescale(recs[i].Shenkin, lo, hi))
		recs[i].AbsNorm = numeric.Round2(numeric.Rescale(recs[i].Shenkin, ShenkinMin, ShenkinMax))
	}
}

// ByColumn indexes records by column.
func (p Profile) ByColumn() map[int]Record {
	out := make(map[int]Record, len(p.Records))
	for _, r := range p.Records {
		out[r.Column] = r
	}
	return out
}

func formatCounts(m map[byte]int) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%c=%d", byte(k), m[byte(k)])
	}
	return strings.Join(parts, ", ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
